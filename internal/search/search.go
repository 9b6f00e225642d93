// Package search implements generic best-first graph search (A*).
//
// States are held in an arena of immutable records referenced by index;
// frontier entries and parent links carry indexes, never copies, and the
// winning path is reconstructed by walking parent links once a goal is
// popped. Ties on f are broken by insertion order so identical inputs
// always produce identical results.
package search

// #region imports
import "container/heap"

// #endregion

// #region arena

// node is one arena entry: an immutable state plus the edge that produced it.
type node[S any, A any] struct {
	state  S
	parent int // arena index of the parent, -1 for the root
	action A   // action taken at the parent to reach this state
	g      float64
}

// #endregion arena

// #region frontier

// item is a frontier entry pointing into the arena.
type item struct {
	idx int     // arena index
	f   float64 // g + h
	g   float64
	seq int // insertion sequence, used as a deterministic tie-break
}

type frontier []item

func (fr frontier) Len() int { return len(fr) }

func (fr frontier) Less(i, j int) bool {
	if fr[i].f != fr[j].f {
		return fr[i].f < fr[j].f
	}
	return fr[i].seq < fr[j].seq
}

func (fr frontier) Swap(i, j int) { fr[i], fr[j] = fr[j], fr[i] }

func (fr *frontier) Push(x any) { *fr = append(*fr, x.(item)) }

func (fr *frontier) Pop() any {
	old := *fr
	n := len(old)
	it := old[n-1]
	*fr = old[:n-1]
	return it
}

// #endregion frontier

// #region astar

// AStar runs best-first graph search over p, ordered by f = g + heuristic.
// nodeLimit caps the number of expansions; 0 means unlimited. Returns
// ErrNoSolution when the frontier is exhausted and ErrLimitExceeded when
// the cap fires first.
func AStar[S any, A any](p Problem[S, A], nodeLimit int) (*Result[S, A], error) {
	arena := []node[S, A]{{state: p.Initial(), parent: -1}}

	fr := &frontier{}
	heap.Init(fr)

	seq := 0
	push := func(idx int, g float64) {
		heap.Push(fr, item{idx: idx, f: g + p.Heuristic(arena[idx].state), g: g, seq: seq})
		seq++
	}

	bestG := map[string]float64{p.Key(arena[0].state): 0}
	push(0, 0)

	expanded := 0
	for fr.Len() > 0 {
		it := heap.Pop(fr).(item)
		cur := arena[it.idx]

		// Stale entry: a cheaper path to this signature was found after push.
		if g, ok := bestG[p.Key(cur.state)]; ok && it.g > g {
			continue
		}

		if p.GoalTest(cur.state) {
			return &Result[S, A]{
				Actions:  reconstruct(arena, it.idx),
				Goal:     cur.state,
				Cost:     it.g,
				Expanded: expanded,
				Pushed:   seq,
			}, nil
		}

		if nodeLimit > 0 && expanded >= nodeLimit {
			return nil, ErrLimitExceeded
		}
		expanded++

		for _, a := range p.Actions(cur.state) {
			next := p.Result(cur.state, a)
			g := it.g + p.StepCost(cur.state, a)

			key := p.Key(next)
			if prev, seen := bestG[key]; seen && g >= prev {
				continue
			}
			bestG[key] = g

			arena = append(arena, node[S, A]{state: next, parent: it.idx, action: a, g: g})
			push(len(arena)-1, g)
		}
	}

	return nil, ErrNoSolution
}

// reconstruct walks parent links from the goal back to the root.
func reconstruct[S any, A any](arena []node[S, A], idx int) []A {
	var rev []A
	for idx > 0 {
		rev = append(rev, arena[idx].action)
		idx = arena[idx].parent
	}
	actions := make([]A, len(rev))
	for i := range rev {
		actions[i] = rev[len(rev)-1-i]
	}
	return actions
}

// #endregion astar
