package orchestrator

// #region imports
import (
	"github.com/nao-dance/choreography/go-planner/internal/plan"
)

// #endregion

// #region config

// Config holds the planner-wide tunables.
type Config struct {
	TotalSlot float64 // exhibition maximum duration, seconds
	Alpha     float64 // repetition penalty weight, >= 0
	Tolerance float64 // accepted leftover time per segment, seconds, >= 0
	Heuristic plan.Heuristic
	NodeLimit int // per-segment expansion cap, 0 = unlimited

	// MinIntermediateMoves is a global floor on the number of intermediate
	// moves across the whole choreography, checked after assembly.
	MinIntermediateMoves int
}

// DefaultConfig returns the stock exhibition tuning.
func DefaultConfig() Config {
	return Config{
		TotalSlot:            120.0,
		Alpha:                0.9,
		Tolerance:            2.3,
		Heuristic:            plan.HeuristicRemainingTime,
		NodeLimit:            0,
		MinIntermediateMoves: 5,
	}
}

// #endregion config

// #region entry

// EntryKind distinguishes mandatory poses from intermediate moves.
type EntryKind string

const (
	EntryPose EntryKind = "pose"
	EntryMove EntryKind = "move"
)

// Entry is one element of the final choreography.
type Entry struct {
	Kind     EntryKind `json:"kind"`
	ID       string    `json:"id"`
	Duration float64   `json:"duration"`
	StartAt  float64   `json:"start_at"` // cumulative timestamp, seconds from the top
}

// #endregion entry

// #region segment-result

// SegmentResult records how one gap between mandatory poses was filled.
type SegmentResult struct {
	Index    int      `json:"index"` // 1-based, matching "step N" operator reports
	FromPose string   `json:"from_pose"`
	ToPose   string   `json:"to_pose"`
	Budget   float64  `json:"budget"` // time slot for intermediate moves
	Moves    []string `json:"moves"`
	Duration float64  `json:"duration"` // summed intermediate-move duration
	Cost     float64  `json:"cost"`     // g-cost of the winning sequence
	Expanded int      `json:"expanded"` // states expanded by the search
}

// #endregion segment-result

// #region choreography

// Choreography is the final artifact: poses interleaved with the planned
// intermediate moves, plus the per-segment planning record.
type Choreography struct {
	Entries       []Entry         `json:"entries"`
	TotalDuration float64         `json:"total_duration"`
	Segments      []SegmentResult `json:"segments"`
	Counters      plan.Counters   `json:"counters"` // final per-move usage counts
}

// MoveCount returns the number of intermediate-move entries.
func (c *Choreography) MoveCount() int {
	n := 0
	for _, e := range c.Entries {
		if e.Kind == EntryMove {
			n++
		}
	}
	return n
}

// #endregion choreography
