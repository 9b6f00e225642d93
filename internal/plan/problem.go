// Package plan formulates the gap between two consecutive mandatory poses
// as a search problem: fill the segment's time slot with catalog moves,
// end in a posture compatible with the next pose, and prefer moves that
// have been used the least so far.
package plan

// #region imports
import (
	"fmt"

	"github.com/nao-dance/choreography/go-planner/internal/catalog"
)

// #endregion

// #region problem-struct

// Problem is one segment's search problem. It satisfies the capability
// set expected by the search engine with State payloads and move-ID actions.
type Problem struct {
	cat       *catalog.Catalog
	start     catalog.Posture
	target    catalog.Posture // entry requirement of the next mandatory pose
	budget    float64         // segment time slot, seconds
	tolerance float64         // accepted leftover time at the goal
	alpha     float64         // repetition penalty weight
	counters  Counters        // frozen snapshot taken at segment start
	heuristic Heuristic
}

// #endregion problem-struct

// #region constructor

// NewProblem builds the segment problem. counters is treated as read-only
// for the lifetime of the problem; pass a snapshot, not the live value.
func NewProblem(
	cat *catalog.Catalog,
	start, target catalog.Posture,
	budget, tolerance, alpha float64,
	counters Counters,
	heuristic Heuristic,
) *Problem {
	if counters == nil {
		counters = Counters{}
	}
	return &Problem{
		cat:       cat,
		start:     start,
		target:    target,
		budget:    budget,
		tolerance: tolerance,
		alpha:     alpha,
		counters:  counters,
		heuristic: heuristic,
	}
}

// #endregion constructor

// #region capability-set

// Initial returns the empty-sequence state at the segment's starting posture.
func (p *Problem) Initial() State {
	return State{Posture: p.start, Elapsed: 0, Steps: 0}
}

// Key returns the dominance signature (posture, elapsed time). The move
// sequence is deliberately absent: step costs depend only on the frozen
// counters and the goal test only on posture and elapsed time, so two
// states agreeing on both are interchangeable.
func (p *Problem) Key(s State) string {
	return fmt.Sprintf("%s|%.4f", s.Posture, s.Elapsed)
}

// Actions returns the IDs of every move legal from s: entry posture
// compatible with the running posture and duration fitting the budget.
// Catalog order, for reproducible tie-breaking.
func (p *Problem) Actions(s State) []string {
	var ids []string
	for _, m := range p.cat.Moves() {
		if !catalog.Compatible(s.Posture, m.Entry) {
			continue
		}
		if s.Elapsed+m.Duration > p.budget {
			continue
		}
		ids = append(ids, m.ID)
	}
	return ids
}

// Result appends the move to the sequence, advancing elapsed time and posture.
func (p *Problem) Result(s State, id string) State {
	m, ok := p.cat.Get(id)
	if !ok {
		// Actions only emits catalog IDs; anything else is a bug.
		panic(fmt.Sprintf("plan: unknown move %q", id))
	}
	return State{
		Posture: m.ExitFrom(s.Posture),
		Elapsed: s.Elapsed + m.Duration,
		Steps:   s.Steps + 1,
	}
}

// GoalTest accepts states whose leftover time is within the tolerance and
// whose posture satisfies the target requirement.
func (p *Problem) GoalTest(s State) bool {
	remaining := p.budget - s.Elapsed
	if remaining < 0 || remaining > p.tolerance {
		return false
	}
	return catalog.Compatible(s.Posture, p.target)
}

// StepCost is the move duration plus the repetition penalty from the
// counters snapshot. Non-negative by construction (duration > 0, alpha >= 0).
func (p *Problem) StepCost(s State, id string) float64 {
	m, ok := p.cat.Get(id)
	if !ok {
		panic(fmt.Sprintf("plan: unknown move %q", id))
	}
	return m.Duration + Penalty(p.alpha, p.counters[id])
}

// Heuristic dispatches on the configured strategy.
func (p *Problem) Heuristic(s State) float64 {
	switch p.heuristic {
	case HeuristicRemainingTime:
		h := p.budget - s.Elapsed - p.tolerance
		if h < 0 {
			return 0
		}
		return h
	default:
		return 0
	}
}

// #endregion capability-set
