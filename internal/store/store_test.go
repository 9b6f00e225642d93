package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nao-dance/choreography/go-planner/internal/catalog"
	"github.com/nao-dance/choreography/go-planner/internal/orchestrator"
	"github.com/nao-dance/choreography/go-planner/internal/plan"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(filepath.Join(t.TempDir(), "choreo.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleChoreography() (*orchestrator.Choreography, orchestrator.Config, []catalog.Move, []catalog.Pose) {
	moves := []catalog.Move{
		{ID: "Wave", Duration: 2, Entry: catalog.Standing, Exit: catalog.Standing},
		{ID: "Sit", Duration: 3, Entry: catalog.Standing, Exit: catalog.Sitting},
	}
	poses := []catalog.Pose{
		{ID: "P1", Exit: catalog.Standing},
		{ID: "P2", Entry: catalog.Sitting},
	}
	ch := &orchestrator.Choreography{
		Entries: []orchestrator.Entry{
			{Kind: orchestrator.EntryPose, ID: "P1", Duration: 0, StartAt: 0},
			{Kind: orchestrator.EntryMove, ID: "Wave", Duration: 2, StartAt: 0},
			{Kind: orchestrator.EntryMove, ID: "Sit", Duration: 3, StartAt: 2},
			{Kind: orchestrator.EntryPose, ID: "P2", Duration: 0, StartAt: 5},
		},
		TotalDuration: 5,
		Segments: []orchestrator.SegmentResult{
			{
				Index:    1,
				FromPose: "P1",
				ToPose:   "P2",
				Budget:   5,
				Moves:    []string{"Wave", "Sit"},
				Duration: 5,
				Cost:     5,
				Expanded: 4,
			},
		},
		Counters: plan.Counters{"Wave": 1, "Sit": 1},
	}
	cfg := orchestrator.Config{TotalSlot: 5, Alpha: 0.9, Tolerance: 0.5, Heuristic: plan.HeuristicRemainingTime}
	return ch, cfg, moves, poses
}

func TestCommitAndGetRoundtrip(t *testing.T) {
	st := tempStore(t)
	ch, cfg, moves, poses := sampleChoreography()

	rec, err := st.Commit(ch, cfg, moves, poses)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if rec.ChoreoID == "" {
		t.Fatal("commit returned empty id")
	}

	got, err := st.Get(rec.ChoreoID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TotalDuration != 5 {
		t.Fatalf("total duration = %v", got.TotalDuration)
	}
	if !reflect.DeepEqual(got.Choreography.Entries, ch.Entries) {
		t.Fatalf("entries roundtrip:\n got %+v\nwant %+v", got.Choreography.Entries, ch.Entries)
	}
	if !reflect.DeepEqual(got.Choreography.Counters, ch.Counters) {
		t.Fatalf("counters roundtrip: %v", got.Choreography.Counters)
	}
	if !reflect.DeepEqual(got.Catalog, moves) || !reflect.DeepEqual(got.Poses, poses) {
		t.Fatal("planner inputs did not roundtrip")
	}

	if len(got.Choreography.Segments) != 1 {
		t.Fatalf("segments = %+v", got.Choreography.Segments)
	}
	seg := got.Choreography.Segments[0]
	if seg.Index != 1 || !reflect.DeepEqual(seg.Moves, []string{"Wave", "Sit"}) || seg.Expanded != 4 {
		t.Fatalf("segment roundtrip: %+v", seg)
	}
}

func TestGetUnknownID(t *testing.T) {
	st := tempStore(t)
	if _, err := st.Get("no-such-id"); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestLatestAndList(t *testing.T) {
	st := tempStore(t)
	ch, cfg, moves, poses := sampleChoreography()

	first, err := st.Commit(ch, cfg, moves, poses)
	if err != nil {
		t.Fatalf("first commit: %v", err)
	}
	ch.TotalDuration = 7
	second, err := st.Commit(ch, cfg, moves, poses)
	if err != nil {
		t.Fatalf("second commit: %v", err)
	}

	latest, err := st.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ChoreoID != second.ChoreoID {
		t.Fatalf("latest = %s, want %s", latest.ChoreoID, second.ChoreoID)
	}

	recs, err := st.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("list returned %d records", len(recs))
	}
	if recs[0].ChoreoID != second.ChoreoID || recs[1].ChoreoID != first.ChoreoID {
		t.Fatal("list not newest-first")
	}
	if recs[0].Choreography.Segments != nil {
		t.Fatal("list must not load segment breakdowns")
	}
}

func TestTransitionEdgesAccumulate(t *testing.T) {
	st := tempStore(t)
	ch, cfg, moves, poses := sampleChoreography()

	// Two commits of the same Wave->Sit segment bump the edge to 2.
	for i := 0; i < 2; i++ {
		if _, err := st.Commit(ch, cfg, moves, poses); err != nil {
			t.Fatalf("commit %d: %v", i, err)
		}
	}

	trs, err := st.TopTransitions(10)
	if err != nil {
		t.Fatalf("TopTransitions: %v", err)
	}
	if len(trs) != 1 {
		t.Fatalf("transitions = %+v", trs)
	}
	tr := trs[0]
	if tr.FromMove != "Wave" || tr.ToMove != "Sit" || tr.Count != 2 {
		t.Fatalf("transition = %+v", tr)
	}
}
