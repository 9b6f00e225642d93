// Package orchestrator chains per-segment searches over consecutive
// mandatory-pose pairs into one validated, continuous choreography.
package orchestrator

// #region imports
import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nao-dance/choreography/go-planner/internal/catalog"
	"github.com/nao-dance/choreography/go-planner/internal/plan"
	"github.com/nao-dance/choreography/go-planner/internal/search"
)

// #endregion

// #region planner-struct

// Planner drives the whole choreography: one search per pose gap,
// repetition counters accumulated across committed segments only.
type Planner struct {
	cat *catalog.Catalog
	cfg Config
}

// #endregion planner-struct

// #region constructor

// New validates the configuration and catalog and returns a Planner.
func New(cat *catalog.Catalog, cfg Config) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cat == nil || cat.Len() == 0 {
		return nil, fmt.Errorf("%w: empty move catalog", ErrInvalidConfig)
	}
	return &Planner{cat: cat, cfg: cfg}, nil
}

// #endregion constructor

// #region plan

// Plan sequences the full choreography. poses is the ordered checkpoint
// list: opening pose, mandatory checkpoints, closing pose. Segment time
// budgets are the slot left after all pose durations, split evenly across
// the gaps. Any failing segment aborts the run; no partial choreography
// is returned.
func (pl *Planner) Plan(poses []catalog.Pose) (*Choreography, error) {
	if err := catalog.ValidatePoses(poses); err != nil {
		return nil, err
	}

	mandatoryTotal := 0.0
	for _, p := range poses {
		mandatoryTotal += p.Duration
	}
	remaining := pl.cfg.TotalSlot - mandatoryTotal
	if remaining < 0 {
		return nil, fmt.Errorf("%w: total slot %.2fs is smaller than the mandatory duration %.2fs",
			ErrInvalidConfig, pl.cfg.TotalSlot, mandatoryTotal)
	}

	segments := len(poses) - 1
	budget := 0.0
	if segments > 0 {
		budget = remaining / float64(segments)
	}

	ch := &Choreography{Counters: plan.Counters{}}
	at := 0.0
	push := func(kind EntryKind, id string, duration float64) {
		ch.Entries = append(ch.Entries, Entry{Kind: kind, ID: id, Duration: duration, StartAt: at})
		at += duration
	}

	// The robot is assumed upright before the opening pose.
	running := catalog.Standing

	push(EntryPose, poses[0].ID, poses[0].Duration)
	running = poses[0].ExitFrom(running)

	for i := 1; i < len(poses); i++ {
		target := poses[i].Entry

		// Frozen counters snapshot: exploration inside this segment must
		// not see its own tentative repetitions, only committed ones.
		problem := plan.NewProblem(
			pl.cat, running, target,
			budget, pl.cfg.Tolerance, pl.cfg.Alpha,
			ch.Counters.Clone(), pl.cfg.Heuristic,
		)

		res, err := search.AStar[plan.State, string](problem, pl.cfg.NodeLimit)
		if err != nil {
			segErr := &SegmentError{
				Index:    i,
				FromPose: poses[i-1].ID,
				ToPose:   poses[i].ID,
				Start:    running,
				Target:   target,
				Budget:   budget,
				Err:      classifySearchErr(err),
			}
			log.Printf("[ORCH] %v", segErr)
			return nil, segErr
		}

		seg := SegmentResult{
			Index:    i,
			FromPose: poses[i-1].ID,
			ToPose:   poses[i].ID,
			Budget:   budget,
			Moves:    res.Actions,
			Duration: res.Goal.Elapsed,
			Cost:     res.Cost,
			Expanded: res.Expanded,
		}
		ch.Segments = append(ch.Segments, seg)

		for _, id := range res.Actions {
			m, _ := pl.cat.Get(id)
			push(EntryMove, m.ID, m.Duration)
		}
		ch.Counters.Commit(res.Actions)
		running = res.Goal.Posture

		push(EntryPose, poses[i].ID, poses[i].Duration)
		running = poses[i].ExitFrom(running)

		log.Printf("[ORCH] segment %d (%s -> %s): %s (%.2fs of %.2fs, %d expanded)",
			i, seg.FromPose, seg.ToPose, strings.Join(seg.Moves, ", "), seg.Duration, seg.Budget, seg.Expanded)
	}

	ch.TotalDuration = at

	// Defensive end-to-end re-check against accumulated rounding error.
	if err := pl.Validate(ch, poses); err != nil {
		return nil, err
	}
	return ch, nil
}

// classifySearchErr maps engine errors onto the planner taxonomy.
func classifySearchErr(err error) error {
	if errors.Is(err, search.ErrLimitExceeded) {
		return ErrSearchLimit
	}
	return ErrUnsatisfiable
}

// #endregion plan
