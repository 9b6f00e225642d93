package search

import "errors"

// #region errors

// ErrNoSolution is returned when the frontier is exhausted without a goal.
var ErrNoSolution = errors.New("search: no solution")

// ErrLimitExceeded is returned when the node-expansion cap is reached
// before a goal is found. It is deliberately distinct from ErrNoSolution:
// a capped search says nothing about solvability.
var ErrLimitExceeded = errors.New("search: expansion limit exceeded")

// #endregion errors

// #region problem

// Problem is the capability set a domain supplies to the engine:
// best-first search over (state, successor-fn, goal-fn, cost-fn, heuristic-fn).
// Step costs must be non-negative and the heuristic admissible for the
// returned solution to be cost-optimal.
type Problem[S any, A any] interface {
	// Initial returns the start state.
	Initial() S
	// Key returns the dominance signature of a state. Two states with the
	// same key are interchangeable for cost and goal purposes; the engine
	// keeps only the cheapest path to each key.
	Key(s S) string
	// Actions returns the legal actions from s, in a deterministic order.
	Actions(s S) []A
	// Result returns the successor of s after action a. States are
	// immutable; Result must not modify s.
	Result(s S, a A) S
	// GoalTest reports whether s satisfies the goal.
	GoalTest(s S) bool
	// StepCost returns the cost of taking action a in state s.
	StepCost(s S, a A) float64
	// Heuristic estimates the remaining cost from s to a goal.
	Heuristic(s S) float64
}

// #endregion problem

// #region result

// Result is the outcome of a successful search.
type Result[S any, A any] struct {
	Actions  []A     // actions from the initial state to the goal, in order
	Goal     S       // the goal state that was popped
	Cost     float64 // accumulated g-cost of the goal
	Expanded int     // number of states expanded
	Pushed   int     // number of states pushed onto the frontier
}

// #endregion result
