package replay

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nao-dance/choreography/go-planner/internal/catalog"
)

func waveSitFixture() Fixture {
	return Fixture{
		Description: "single standing-to-sitting segment",
		Catalog: []catalog.Move{
			{ID: "Wave", Duration: 2, Entry: catalog.Standing, Exit: catalog.Standing},
			{ID: "Sit", Duration: 3, Entry: catalog.Standing, Exit: catalog.Sitting},
		},
		Poses: []catalog.Pose{
			{ID: "P1", Exit: catalog.Standing},
			{ID: "P2", Entry: catalog.Sitting, Exit: catalog.Sitting},
		},
		Config: FixtureConfig{
			TotalSlot: 5,
			Alpha:     0.9,
			Tolerance: 0.5,
			Heuristic: "remaining-time",
		},
		Expected: FixtureExpected{
			Entries:       []string{"P1", "Wave", "Sit", "P2"},
			TotalDuration: 5,
		},
	}
}

func TestRunMatchesExpectation(t *testing.T) {
	f := waveSitFixture()

	r, err := Run(f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Err != nil {
		t.Fatalf("planner error: %v", r.Err)
	}
	if !reflect.DeepEqual(r.Entries, f.Expected.Entries) {
		t.Fatalf("entries = %v", r.Entries)
	}
	if got := Verify(f, r); len(got) != 0 {
		t.Fatalf("unexpected mismatches: %v", got)
	}
}

func TestVerifyFlagsDrift(t *testing.T) {
	f := waveSitFixture()
	r, err := Run(f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	f.Expected.Entries = []string{"P1", "Sit", "Wave", "P2"}
	got := Verify(f, r)
	if len(got) == 0 {
		t.Fatal("expected mismatches for reordered entries")
	}

	f = waveSitFixture()
	f.Expected.TotalDuration = 9
	got = Verify(f, r)
	if len(got) != 1 || !strings.Contains(got[0], "total duration") {
		t.Fatalf("mismatches = %v", got)
	}
}

func TestVerifyFailureClasses(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Fixture)
		failure string
	}{
		{
			"unsatisfiable budget",
			func(f *Fixture) { f.Config.TotalSlot = 1 },
			"unsatisfiable",
		},
		{
			"search cap",
			func(f *Fixture) { f.Config.NodeLimit = 1 },
			"search_limit",
		},
		{
			"bad config",
			func(f *Fixture) { f.Config.Alpha = -1 },
			"config",
		},
		{
			"bad catalog",
			func(f *Fixture) { f.Catalog[0].Duration = -2 },
			"config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := waveSitFixture()
			tt.mutate(&f)
			f.Expected = FixtureExpected{Failure: tt.failure}

			r, err := Run(f)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if r.Err == nil {
				t.Fatal("expected a planner error")
			}
			if got := Verify(f, r); len(got) != 0 {
				t.Fatalf("mismatches = %v", got)
			}

			// The wrong expected class must be reported.
			f.Expected.Failure = "other"
			if got := Verify(f, r); len(got) == 0 {
				t.Fatal("wrong failure class not flagged")
			}
		})
	}
}

func TestVerifyExpectedFailureButSuccess(t *testing.T) {
	f := waveSitFixture()
	f.Expected = FixtureExpected{Failure: "unsatisfiable"}

	r, err := Run(f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := Verify(f, r); len(got) != 1 || !strings.Contains(got[0], "run succeeded") {
		t.Fatalf("mismatches = %v", got)
	}
}

func TestDeterministic(t *testing.T) {
	ok, err := Deterministic(waveSitFixture())
	if err != nil {
		t.Fatalf("Deterministic: %v", err)
	}
	if !ok {
		t.Fatal("identical fixture runs diverged")
	}

	failing := waveSitFixture()
	failing.Config.TotalSlot = 1
	ok, err = Deterministic(failing)
	if err != nil {
		t.Fatalf("Deterministic (failing): %v", err)
	}
	if !ok {
		t.Fatal("failure class not stable across runs")
	}
}

func TestFixtureRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	f := waveSitFixture()

	if err := SaveFixture(path, f); err != nil {
		t.Fatalf("SaveFixture: %v", err)
	}
	got, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if !reflect.DeepEqual(got, f) {
		t.Fatalf("fixture changed across save/load:\n got %+v\nwant %+v", got, f)
	}

	if _, err := LoadFixture(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
