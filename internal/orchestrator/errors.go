package orchestrator

// #region imports
import (
	"errors"
	"fmt"

	"github.com/nao-dance/choreography/go-planner/internal/catalog"
)

// #endregion

// #region sentinels

// ErrUnsatisfiable means no move sequence reaches the target posture
// within a segment's budget and tolerance.
var ErrUnsatisfiable = errors.New("unsatisfiable segment")

// ErrSearchLimit means a segment search hit the node-expansion cap before
// finding a goal. Never conflated with ErrUnsatisfiable: a capped search
// proves nothing about solvability.
var ErrSearchLimit = errors.New("segment search limit exceeded")

// ErrInvalidConfig marks a configuration rejected before planning starts.
var ErrInvalidConfig = errors.New("invalid planner configuration")

// ErrInvalidChoreography marks a failure of the final end-to-end
// validation pass over the assembled choreography.
var ErrInvalidChoreography = errors.New("invalid choreography")

// #endregion sentinels

// #region segment-error

// SegmentError carries enough context to diagnose a failed segment:
// its index, the bounding poses, the posture pair and the time budget.
type SegmentError struct {
	Index    int
	FromPose string
	ToPose   string
	Start    catalog.Posture
	Target   catalog.Posture
	Budget   float64
	Err      error // ErrUnsatisfiable or ErrSearchLimit
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %d (%s -> %s, posture %q -> %q, budget %.2fs): %v",
		e.Index, e.FromPose, e.ToPose, postureLabel(e.Start), postureLabel(e.Target), e.Budget, e.Err)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}

func postureLabel(p catalog.Posture) string {
	if p == catalog.Any {
		return "any"
	}
	return string(p)
}

// #endregion segment-error

// #region config-validate

// Validate rejects configurations that can never plan successfully.
func (c Config) Validate() error {
	if c.TotalSlot <= 0 {
		return fmt.Errorf("%w: non-positive total slot %.2f", ErrInvalidConfig, c.TotalSlot)
	}
	if c.Alpha < 0 {
		return fmt.Errorf("%w: negative penalty weight %.2f", ErrInvalidConfig, c.Alpha)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: negative tolerance %.2f", ErrInvalidConfig, c.Tolerance)
	}
	if c.NodeLimit < 0 {
		return fmt.Errorf("%w: negative node limit %d", ErrInvalidConfig, c.NodeLimit)
	}
	if c.MinIntermediateMoves < 0 {
		return fmt.Errorf("%w: negative intermediate-move floor %d", ErrInvalidConfig, c.MinIntermediateMoves)
	}
	switch c.Heuristic {
	case "", "zero", "remaining-time":
	default:
		return fmt.Errorf("%w: unknown heuristic %q", ErrInvalidConfig, c.Heuristic)
	}
	return nil
}

// #endregion config-validate
