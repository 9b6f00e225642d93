package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/nao-dance/choreography/go-planner/internal/orchestrator"
	"github.com/nao-dance/choreography/go-planner/internal/replay"
	"github.com/nao-dance/choreography/go-planner/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to choreography.db (DB mode: replay the latest stored run)")
	choreoID := flag.String("id", "", "choreography ID to replay (DB mode, default: latest)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/choreography.db [--id choreo-id]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *choreoID)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	res, err := replay.Run(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	mismatches := replay.Verify(f, res)
	report(f.Description, res, mismatches)

	stable, err := replay.Deterministic(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "determinism check: %v\n", err)
		return 2
	}
	if !stable {
		fmt.Println("DETERMINISM: FAIL (two runs disagreed)")
		return 1
	}
	fmt.Println("DETERMINISM: ok")

	if len(mismatches) > 0 {
		return 1
	}
	return 0
}

// #endregion fixture-mode

// #region db-mode

// runDBMode re-plans a stored choreography from its recorded catalog,
// poses and config, and checks the fresh run matches the stored entries.
func runDBMode(dbPath, choreoID string) int {
	st, err := store.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer st.Close()

	var rec store.Record
	if choreoID != "" {
		rec, err = st.Get(choreoID)
	} else {
		rec, err = st.Latest()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load record: %v\n", err)
		return 2
	}

	var cfg orchestrator.Config
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "parse stored config: %v\n", err)
		return 2
	}

	expected := make([]string, len(rec.Choreography.Entries))
	for i, e := range rec.Choreography.Entries {
		expected[i] = e.ID
	}

	f := replay.Fixture{
		Description: fmt.Sprintf("stored choreography %s", rec.ChoreoID),
		Catalog:     rec.Catalog,
		Poses:       rec.Poses,
		Config:      replay.FromConfig(cfg),
		Expected: replay.FixtureExpected{
			Entries:       expected,
			TotalDuration: rec.TotalDuration,
		},
	}

	res, err := replay.Run(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}
	mismatches := replay.Verify(f, res)
	report(f.Description, res, mismatches)
	if len(mismatches) > 0 {
		return 1
	}
	return 0
}

// #endregion db-mode

// #region report

func report(desc string, res replay.Result, mismatches []string) {
	fmt.Printf("REPLAY: %s\n", desc)
	if res.Err != nil {
		fmt.Printf("  outcome: error: %v\n", res.Err)
	} else {
		fmt.Printf("  outcome: %d entries, %.2fs total\n", len(res.Entries), res.Choreography.TotalDuration)
	}
	if len(mismatches) == 0 {
		fmt.Println("  MATCH")
		return
	}
	for _, m := range mismatches {
		fmt.Printf("  MISMATCH: %s\n", m)
	}
}

// #endregion report
