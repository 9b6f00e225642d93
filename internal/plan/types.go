package plan

import "github.com/nao-dance/choreography/go-planner/internal/catalog"

// #region state

// State is the search-node payload for one segment: how much of the time
// slot has been consumed and which posture the robot is left in. States
// are immutable; every expansion produces a new value.
type State struct {
	Posture catalog.Posture
	Elapsed float64 // seconds consumed within the segment
	Steps   int     // number of moves appended so far
}

// #endregion state

// #region heuristic

// Heuristic selects the A* heuristic strategy.
type Heuristic string

const (
	// HeuristicZero degrades A* to uniform-cost search. Always admissible.
	HeuristicZero Heuristic = "zero"
	// HeuristicRemainingTime estimates the duration that must still be
	// consumed to land inside the goal window: max(0, remaining - tolerance).
	// Step costs are duration plus a non-negative penalty, so this never
	// overestimates and is consistent.
	HeuristicRemainingTime Heuristic = "remaining-time"
)

// #endregion heuristic
