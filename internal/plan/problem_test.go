package plan

import (
	"reflect"
	"testing"

	"github.com/nao-dance/choreography/go-planner/internal/catalog"
	"github.com/nao-dance/choreography/go-planner/internal/search"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Move{
		{ID: "Wave", Duration: 2, Entry: catalog.Standing, Exit: catalog.Standing},
		{ID: "Sit", Duration: 3, Entry: catalog.Standing, Exit: catalog.Sitting},
		{ID: "Clap", Duration: 4}, // any entry, posture-preserving
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func TestActionsRespectPostureAndBudget(t *testing.T) {
	cat := testCatalog(t)

	tests := []struct {
		name  string
		state State
		want  []string
	}{
		{"standing with full budget", State{Posture: catalog.Standing, Elapsed: 0}, []string{"Wave", "Sit", "Clap"}},
		{"sitting only any-entry", State{Posture: catalog.Sitting, Elapsed: 0}, []string{"Clap"}},
		{"budget excludes long moves", State{Posture: catalog.Standing, Elapsed: 3}, []string{"Wave"}},
		{"budget exhausted", State{Posture: catalog.Standing, Elapsed: 4.5}, nil},
	}

	p := NewProblem(cat, catalog.Standing, catalog.Sitting, 5, 0.5, 0, nil, HeuristicZero)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Actions(tt.state)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("actions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultAdvancesStateImmutably(t *testing.T) {
	cat := testCatalog(t)
	p := NewProblem(cat, catalog.Standing, catalog.Sitting, 10, 0.5, 0, nil, HeuristicZero)

	s0 := p.Initial()
	s1 := p.Result(s0, "Sit")

	if s0.Elapsed != 0 || s0.Posture != catalog.Standing || s0.Steps != 0 {
		t.Fatalf("initial state mutated: %+v", s0)
	}
	if s1.Posture != catalog.Sitting || s1.Elapsed != 3 || s1.Steps != 1 {
		t.Fatalf("successor = %+v", s1)
	}

	// Any-exit move keeps the running posture.
	s2 := p.Result(s1, "Clap")
	if s2.Posture != catalog.Sitting || s2.Elapsed != 7 {
		t.Fatalf("any-exit successor = %+v", s2)
	}
}

func TestGoalTestWindowAndPosture(t *testing.T) {
	cat := testCatalog(t)
	p := NewProblem(cat, catalog.Standing, catalog.Sitting, 5, 0.5, 0, nil, HeuristicZero)

	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"exact fill, right posture", State{Posture: catalog.Sitting, Elapsed: 5}, true},
		{"within tolerance", State{Posture: catalog.Sitting, Elapsed: 4.6}, true},
		{"underfilled", State{Posture: catalog.Sitting, Elapsed: 4.0}, false},
		{"wrong posture", State{Posture: catalog.Standing, Elapsed: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.GoalTest(tt.state); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}

	// An any target accepts every posture.
	pAny := NewProblem(cat, catalog.Standing, catalog.Any, 5, 0.5, 0, nil, HeuristicZero)
	if !pAny.GoalTest(State{Posture: catalog.Standing, Elapsed: 5}) {
		t.Fatal("any target must accept standing")
	}
}

func TestStepCostUsesFrozenCounters(t *testing.T) {
	cat := testCatalog(t)
	counters := Counters{"Wave": 2}
	p := NewProblem(cat, catalog.Standing, catalog.Sitting, 20, 0.5, 0.9, counters, HeuristicZero)

	s := p.Initial()
	if got, want := p.StepCost(s, "Wave"), 2+0.9*4.0; got != want {
		t.Fatalf("penalized cost = %v, want %v", got, want)
	}
	if got := p.StepCost(s, "Sit"); got != 3 {
		t.Fatalf("unpenalized cost = %v, want 3", got)
	}

	// In-segment repetitions must not change sibling costs: the cost of
	// Wave is identical before and after exploring a Wave successor.
	after := p.Result(s, "Wave")
	if got := p.StepCost(after, "Wave"); got != 2+0.9*4.0 {
		t.Fatalf("cost changed mid-search: %v", got)
	}
}

func TestKeyIgnoresSequenceIdentity(t *testing.T) {
	cat := testCatalog(t)
	p := NewProblem(cat, catalog.Standing, catalog.Sitting, 20, 0.5, 0, nil, HeuristicZero)

	a := State{Posture: catalog.Standing, Elapsed: 6, Steps: 3}
	b := State{Posture: catalog.Standing, Elapsed: 6, Steps: 2}
	if p.Key(a) != p.Key(b) {
		t.Fatal("states agreeing on posture and elapsed time must share a key")
	}
	c := State{Posture: catalog.Sitting, Elapsed: 6}
	if p.Key(a) == p.Key(c) {
		t.Fatal("posture must be part of the key")
	}
}

func TestHeuristics(t *testing.T) {
	cat := testCatalog(t)

	zero := NewProblem(cat, catalog.Standing, catalog.Sitting, 10, 0.5, 0, nil, HeuristicZero)
	if got := zero.Heuristic(State{Elapsed: 2}); got != 0 {
		t.Fatalf("zero heuristic = %v", got)
	}

	rt := NewProblem(cat, catalog.Standing, catalog.Sitting, 10, 0.5, 0, nil, HeuristicRemainingTime)
	if got := rt.Heuristic(State{Elapsed: 2}); got != 7.5 {
		t.Fatalf("remaining-time heuristic = %v, want 7.5", got)
	}
	// Inside the goal window the bound collapses to zero.
	if got := rt.Heuristic(State{Elapsed: 9.8}); got != 0 {
		t.Fatalf("heuristic inside window = %v, want 0", got)
	}
}

func TestProblemSolvesSegmentWithSearch(t *testing.T) {
	cat := testCatalog(t)
	p := NewProblem(cat, catalog.Standing, catalog.Sitting, 5, 0.5, 0, nil, HeuristicRemainingTime)

	res, err := search.AStar[State, string](p, 0)
	if err != nil {
		t.Fatalf("AStar: %v", err)
	}
	if !reflect.DeepEqual(res.Actions, []string{"Wave", "Sit"}) {
		t.Fatalf("actions = %v, want [Wave Sit]", res.Actions)
	}
	if res.Goal.Posture != catalog.Sitting || res.Goal.Elapsed != 5 {
		t.Fatalf("goal = %+v", res.Goal)
	}
}
