package plan

// #region counters

// Counters maps move IDs to the number of times each move has been used
// across all committed segments of the choreography being built. The
// orchestrator owns the live value; each segment's search reads a frozen
// snapshot so costs cannot change mid-search.
type Counters map[string]int

// Clone returns an independent copy.
func (c Counters) Clone() Counters {
	out := make(Counters, len(c))
	for id, n := range c {
		out[id] = n
	}
	return out
}

// Commit increments the count of every move in a finalized segment sequence.
func (c Counters) Commit(moves []string) {
	for _, id := range moves {
		c[id]++
	}
}

// #endregion counters

// #region penalty

// Penalty is the additive repetition cost for a move already used n times.
// Quadratic in n: unused moves are free, repeats get steeply costlier but
// never illegal.
func Penalty(alpha float64, n int) float64 {
	return alpha * float64(n) * float64(n)
}

// #endregion penalty
