package orchestrator

// #region imports
import (
	"fmt"
	"math"

	"github.com/nao-dance/choreography/go-planner/internal/catalog"
)

// #endregion

// timestampSlack absorbs float accumulation when re-checking cumulative
// timestamps entry by entry.
const timestampSlack = 1e-6

// #region validate

// Validate re-checks the assembled choreography end to end: cumulative
// timestamps, posture continuity, the global time budget, per-segment
// budget tolerance and the intermediate-move floor.
func (pl *Planner) Validate(ch *Choreography, poses []catalog.Pose) error {
	if len(ch.Entries) == 0 {
		return fmt.Errorf("%w: no entries", ErrInvalidChoreography)
	}

	poseByID := make(map[string]catalog.Pose, len(poses))
	for _, p := range poses {
		poseByID[p.ID] = p
	}

	at := 0.0
	running := catalog.Standing
	for i, e := range ch.Entries {
		if math.Abs(e.StartAt-at) > timestampSlack {
			return fmt.Errorf("%w: entry %d (%s) timestamp %.4f, expected %.4f",
				ErrInvalidChoreography, i, e.ID, e.StartAt, at)
		}

		var entry, exit catalog.Posture
		switch e.Kind {
		case EntryPose:
			p, ok := poseByID[e.ID]
			if !ok {
				return fmt.Errorf("%w: entry %d references unknown pose %q", ErrInvalidChoreography, i, e.ID)
			}
			entry, exit = p.Entry, p.ExitFrom(running)
		case EntryMove:
			m, ok := pl.cat.Get(e.ID)
			if !ok {
				return fmt.Errorf("%w: entry %d references unknown move %q", ErrInvalidChoreography, i, e.ID)
			}
			entry, exit = m.Entry, m.ExitFrom(running)
		default:
			return fmt.Errorf("%w: entry %d has unknown kind %q", ErrInvalidChoreography, i, e.Kind)
		}

		if !catalog.Compatible(running, entry) {
			return fmt.Errorf("%w: entry %d (%s) requires posture %q but the robot is %q",
				ErrInvalidChoreography, i, e.ID, postureLabel(entry), postureLabel(running))
		}
		running = exit
		at += e.Duration
	}

	if math.Abs(ch.TotalDuration-at) > timestampSlack {
		return fmt.Errorf("%w: recorded total %.4fs, recomputed %.4fs",
			ErrInvalidChoreography, ch.TotalDuration, at)
	}
	if at > pl.cfg.TotalSlot+pl.cfg.Tolerance {
		return fmt.Errorf("%w: total duration %.2fs exceeds slot %.2fs (+%.2fs tolerance)",
			ErrInvalidChoreography, at, pl.cfg.TotalSlot, pl.cfg.Tolerance)
	}

	for _, seg := range ch.Segments {
		leftover := seg.Budget - seg.Duration
		if leftover < -timestampSlack || leftover > pl.cfg.Tolerance+timestampSlack {
			return fmt.Errorf("%w: segment %d filled %.2fs of a %.2fs slot (tolerance %.2fs)",
				ErrInvalidChoreography, seg.Index, seg.Duration, seg.Budget, pl.cfg.Tolerance)
		}
	}

	if got := ch.MoveCount(); got < pl.cfg.MinIntermediateMoves {
		return fmt.Errorf("%w: only %d intermediate moves, at least %d required",
			ErrInvalidChoreography, got, pl.cfg.MinIntermediateMoves)
	}
	return nil
}

// #endregion validate
