// Package replay re-runs the planner from recorded fixtures and checks
// the result against the recorded expectation. Planning is deterministic,
// so a fixture that drifts means the planner changed, not the input.
package replay

// #region imports
import (
	"errors"
	"fmt"
	"math"

	"github.com/nao-dance/choreography/go-planner/internal/catalog"
	"github.com/nao-dance/choreography/go-planner/internal/orchestrator"
)

// #endregion

// durationSlack tolerates float noise when comparing recorded durations.
const durationSlack = 1e-6

// #region result

// Result captures one replay run.
type Result struct {
	Choreography *orchestrator.Choreography // nil when Err is set
	Entries      []string                   // ordered entry IDs
	Err          error
}

// #endregion result

// #region run

// Run executes the planner on the fixture input.
func Run(f Fixture) (Result, error) {
	cat, err := catalog.New(f.Catalog)
	if err != nil {
		return Result{Err: err}, nil
	}
	pl, err := orchestrator.New(cat, f.Config.ToConfig())
	if err != nil {
		return Result{Err: err}, nil
	}
	ch, err := pl.Plan(f.Poses)
	if err != nil {
		return Result{Err: err}, nil
	}

	entries := make([]string, len(ch.Entries))
	for i, e := range ch.Entries {
		entries[i] = e.ID
	}
	return Result{Choreography: ch, Entries: entries}, nil
}

// #endregion run

// #region verify

// Verify compares a run result against the fixture expectation and
// returns one message per mismatch.
func Verify(f Fixture, r Result) []string {
	var mismatches []string

	if f.Expected.Failure != "" {
		if r.Err == nil {
			return []string{fmt.Sprintf("expected %s failure, run succeeded", f.Expected.Failure)}
		}
		if got := failureClass(r.Err); got != f.Expected.Failure {
			mismatches = append(mismatches, fmt.Sprintf("expected %s failure, got %s (%v)", f.Expected.Failure, got, r.Err))
		}
		return mismatches
	}

	if r.Err != nil {
		return []string{fmt.Sprintf("expected success, got error: %v", r.Err)}
	}

	if len(r.Entries) != len(f.Expected.Entries) {
		mismatches = append(mismatches, fmt.Sprintf("entry count %d, expected %d", len(r.Entries), len(f.Expected.Entries)))
	} else {
		for i := range r.Entries {
			if r.Entries[i] != f.Expected.Entries[i] {
				mismatches = append(mismatches, fmt.Sprintf("entry %d is %q, expected %q", i, r.Entries[i], f.Expected.Entries[i]))
			}
		}
	}

	if f.Expected.TotalDuration > 0 &&
		math.Abs(r.Choreography.TotalDuration-f.Expected.TotalDuration) > durationSlack {
		mismatches = append(mismatches, fmt.Sprintf("total duration %.4fs, expected %.4fs",
			r.Choreography.TotalDuration, f.Expected.TotalDuration))
	}

	return mismatches
}

// failureClass maps planner errors onto fixture failure tokens.
func failureClass(err error) string {
	switch {
	case errors.Is(err, orchestrator.ErrSearchLimit):
		return "search_limit"
	case errors.Is(err, orchestrator.ErrUnsatisfiable):
		return "unsatisfiable"
	case errors.Is(err, orchestrator.ErrInvalidConfig),
		errors.Is(err, catalog.ErrInvalidMove),
		errors.Is(err, catalog.ErrInvalidPose):
		return "config"
	}
	return "other"
}

// #endregion verify

// #region deterministic

// Deterministic runs the fixture twice and reports whether both runs
// produced identical entry sequences (or identical failure classes).
func Deterministic(f Fixture) (bool, error) {
	first, err := Run(f)
	if err != nil {
		return false, err
	}
	second, err := Run(f)
	if err != nil {
		return false, err
	}

	if (first.Err == nil) != (second.Err == nil) {
		return false, nil
	}
	if first.Err != nil {
		return failureClass(first.Err) == failureClass(second.Err), nil
	}
	if len(first.Entries) != len(second.Entries) {
		return false, nil
	}
	for i := range first.Entries {
		if first.Entries[i] != second.Entries[i] {
			return false, nil
		}
	}
	return true, nil
}

// #endregion deterministic
