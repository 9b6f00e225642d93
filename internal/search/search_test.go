package search

import (
	"errors"
	"strconv"
	"testing"
)

// sumProblem reaches a target sum with a fixed set of increments.
// Deliberately tiny: it exists to exercise the engine, not the domain.
type sumProblem struct {
	target  int
	steps   []step
	isGoal  func(n int) bool
	heurist func(n int) float64
}

type step struct {
	name string
	add  int
	cost float64
}

func (p *sumProblem) Initial() int { return 0 }

func (p *sumProblem) Key(n int) string { return strconv.Itoa(n) }

func (p *sumProblem) GoalTest(n int) bool {
	if p.isGoal != nil {
		return p.isGoal(n)
	}
	return n == p.target
}

func (p *sumProblem) Actions(n int) []string {
	var out []string
	for _, s := range p.steps {
		if n+s.add <= p.target {
			out = append(out, s.name)
		}
	}
	return out
}

func (p *sumProblem) Result(n int, a string) int {
	for _, s := range p.steps {
		if s.name == a {
			return n + s.add
		}
	}
	return n
}

func (p *sumProblem) StepCost(n int, a string) float64 {
	for _, s := range p.steps {
		if s.name == a {
			return s.cost
		}
	}
	return 0
}

func (p *sumProblem) Heuristic(n int) float64 {
	if p.heurist != nil {
		return p.heurist(n)
	}
	return 0
}

func TestAStarFindsCheapestPath(t *testing.T) {
	p := &sumProblem{
		target: 4,
		steps: []step{
			{"one", 1, 1.0},
			{"two", 2, 1.5},
		},
	}

	res, err := AStar[int, string](p, 0)
	if err != nil {
		t.Fatalf("AStar: %v", err)
	}
	// two+two (cost 3.0) beats one+one+two (3.5) and one*4 (4.0).
	if len(res.Actions) != 2 || res.Actions[0] != "two" || res.Actions[1] != "two" {
		t.Fatalf("actions = %v", res.Actions)
	}
	if res.Cost != 3.0 {
		t.Fatalf("cost = %v, want 3.0", res.Cost)
	}
	if res.Goal != 4 {
		t.Fatalf("goal state = %d, want 4", res.Goal)
	}
}

func TestAStarAdmissibleHeuristicSameAnswer(t *testing.T) {
	base := sumProblem{
		target: 4,
		steps:  []step{{"one", 1, 1.0}, {"two", 2, 1.5}},
	}
	withH := base
	withH.heurist = func(n int) float64 {
		// At most 0.75 cost per unit remaining: never overestimates.
		return 0.75 * float64(base.target-n)
	}

	plain, err := AStar[int, string](&base, 0)
	if err != nil {
		t.Fatalf("uniform-cost: %v", err)
	}
	informed, err := AStar[int, string](&withH, 0)
	if err != nil {
		t.Fatalf("informed: %v", err)
	}
	if plain.Cost != informed.Cost {
		t.Fatalf("costs diverge: %v vs %v", plain.Cost, informed.Cost)
	}
	if informed.Expanded > plain.Expanded {
		t.Fatalf("informed search expanded more states (%d) than uniform cost (%d)",
			informed.Expanded, plain.Expanded)
	}
}

func TestAStarDeterministicTieBreak(t *testing.T) {
	// Both actions reach a goal at identical cost; insertion order must win,
	// every run.
	p := &sumProblem{
		target: 4,
		steps:  []step{{"left", 2, 1.0}, {"right", 2, 1.0}},
		isGoal: func(n int) bool { return n >= 2 },
	}

	for i := 0; i < 10; i++ {
		res, err := AStar[int, string](p, 0)
		if err != nil {
			t.Fatalf("AStar: %v", err)
		}
		if len(res.Actions) != 1 || res.Actions[0] != "left" {
			t.Fatalf("run %d: actions = %v, want [left]", i, res.Actions)
		}
	}
}

func TestAStarNoSolution(t *testing.T) {
	p := &sumProblem{
		target: 5,
		steps:  []step{{"two", 2, 1.0}}, // only even sums are reachable
	}

	_, err := AStar[int, string](p, 0)
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("expected ErrNoSolution, got %v", err)
	}
}

func TestAStarExpansionLimit(t *testing.T) {
	p := &sumProblem{
		target: 4,
		steps:  []step{{"one", 1, 1.0}},
	}

	_, err := AStar[int, string](p, 1)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}

	// A generous limit must not fire.
	if _, err := AStar[int, string](p, 1000); err != nil {
		t.Fatalf("unexpected error with generous limit: %v", err)
	}
}

func TestAStarGoalAtInitialState(t *testing.T) {
	p := &sumProblem{
		target: 0,
		steps:  []step{{"one", 1, 1.0}},
	}

	res, err := AStar[int, string](p, 0)
	if err != nil {
		t.Fatalf("AStar: %v", err)
	}
	if len(res.Actions) != 0 {
		t.Fatalf("expected empty action list, got %v", res.Actions)
	}
	if res.Cost != 0 {
		t.Fatalf("cost = %v, want 0", res.Cost)
	}
}
