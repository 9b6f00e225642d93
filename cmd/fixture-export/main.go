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
	dbPath := flag.String("db", "", "path to choreography.db")
	choreoID := flag.String("id", "", "choreography to export (default: latest)")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/db --out path/to/fixture.json [--id choreo-id]")
		os.Exit(2)
	}

	if err := run(*dbPath, *choreoID, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath, choreoID, outPath string) error {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer st.Close()

	var rec store.Record
	if choreoID != "" {
		rec, err = st.Get(choreoID)
	} else {
		rec, err = st.Latest()
	}
	if err != nil {
		return fmt.Errorf("load record: %w", err)
	}

	var cfg orchestrator.Config
	if err := json.Unmarshal([]byte(rec.ConfigJSON), &cfg); err != nil {
		return fmt.Errorf("parse stored config: %w", err)
	}

	entries := make([]string, len(rec.Choreography.Entries))
	for i, e := range rec.Choreography.Entries {
		entries[i] = e.ID
	}

	f := replay.Fixture{
		Description: fmt.Sprintf("exported from %s (planned %s)", rec.ChoreoID, rec.CreatedAt.Format("2006-01-02 15:04:05")),
		Catalog:     rec.Catalog,
		Poses:       rec.Poses,
		Config:      replay.FromConfig(cfg),
		Expected: replay.FixtureExpected{
			Entries:       entries,
			TotalDuration: rec.TotalDuration,
		},
	}

	if err := replay.SaveFixture(outPath, f); err != nil {
		return err
	}
	fmt.Printf("exported %s -> %s\n", rec.ChoreoID, outPath)
	return nil
}

// #endregion export
