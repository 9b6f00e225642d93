package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/nao-dance/choreography/go-planner/internal/logging"
	"github.com/nao-dance/choreography/go-planner/internal/orchestrator"
	"github.com/nao-dance/choreography/go-planner/internal/store"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to choreography.db")
	last := flag.Int("last", 20, "show N most recent choreographies")
	choreoID := flag.String("id", "", "show single choreography detail")
	transitions := flag.Bool("transitions", false, "show top move transitions instead")
	provenance := flag.Bool("provenance", false, "show recent planning decisions instead")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/choreography.db [--last N] [--id choreo-id] [--transitions] [--provenance] [--json]")
		os.Exit(2)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	switch {
	case *transitions:
		err = runTransitionsMode(st, *last, *jsonOut)
	case *provenance:
		err = runProvenanceMode(st, *last, *jsonOut)
	case *choreoID != "":
		err = runDetailMode(st, *choreoID, *jsonOut)
	default:
		err = runListMode(st, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	ChoreoID      string  `json:"choreo_id"`
	CreatedAt     string  `json:"created_at"`
	TotalDuration float64 `json:"total_duration"`
	Entries       int     `json:"entries"`
	Moves         int     `json:"moves"`
}

func runListMode(st *store.Store, last int, jsonOut bool) error {
	recs, err := st.List(last)
	if err != nil {
		return err
	}

	rows := make([]listRow, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, listRow{
			ChoreoID:      r.ChoreoID,
			CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04:05"),
			TotalDuration: r.TotalDuration,
			Entries:       len(r.Choreography.Entries),
			Moves:         r.Choreography.MoveCount(),
		})
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(rows)
	}
	fmt.Printf("%-36s  %-19s  %8s  %7s  %5s\n", "CHOREO", "CREATED", "DURATION", "ENTRIES", "MOVES")
	for _, r := range rows {
		fmt.Printf("%-36s  %-19s  %7.2fs  %7d  %5d\n", r.ChoreoID, r.CreatedAt, r.TotalDuration, r.Entries, r.Moves)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

func runDetailMode(st *store.Store, id string, jsonOut bool) error {
	rec, err := st.Get(id)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(rec.Choreography)
	}

	fmt.Printf("Choreography %s (%.2fs total)\n", rec.ChoreoID, rec.TotalDuration)
	for _, seg := range rec.Choreography.Segments {
		fmt.Printf("  segment %d: %s -> %s  budget %.2fs  filled %.2fs  cost %.2f  expanded %d\n",
			seg.Index, seg.FromPose, seg.ToPose, seg.Budget, seg.Duration, seg.Cost, seg.Expanded)
	}
	fmt.Println("  sequence:")
	for _, e := range rec.Choreography.Entries {
		marker := " "
		if e.Kind == orchestrator.EntryPose {
			marker = "*"
		}
		fmt.Printf("    %s %7.2fs  %s\n", marker, e.StartAt, e.ID)
	}
	return nil
}

// #endregion detail-mode

// #region transitions-mode

func runTransitionsMode(st *store.Store, last int, jsonOut bool) error {
	trs, err := st.TopTransitions(last)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(trs)
	}
	fmt.Printf("%-28s  %-28s  %s\n", "FROM", "TO", "COUNT")
	for _, tr := range trs {
		fmt.Printf("%-28s  %-28s  %d\n", tr.FromMove, tr.ToMove, tr.Count)
	}
	return nil
}

// #endregion transitions-mode

// #region provenance-mode

func runProvenanceMode(st *store.Store, last int, jsonOut bool) error {
	rows, err := logging.Recent(st.DB(), last)
	if err != nil {
		return err
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(rows)
	}
	for _, e := range rows {
		fmt.Printf("%s  seg %d  %s -> %s  budget %.2fs  %s  %s\n",
			e.ChoreoID, e.SegIndex, e.FromPose, e.ToPose, e.Budget, e.Decision, e.Reason)
	}
	return nil
}

// #endregion provenance-mode
