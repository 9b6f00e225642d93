package catalog

// #region imports
import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// #endregion

// #region errors

// ErrInvalidMove marks a catalog entry rejected at load time.
var ErrInvalidMove = errors.New("invalid catalog entry")

// ErrInvalidPose marks a mandatory pose rejected at load time.
var ErrInvalidPose = errors.New("invalid mandatory pose")

// #endregion errors

// #region parse-posture

// ParsePosture maps a posture token to a Posture value.
// Accepted tokens: "standing", "sitting", "any", "".
func ParsePosture(tok string) (Posture, error) {
	switch tok {
	case "standing":
		return Standing, nil
	case "sitting":
		return Sitting, nil
	case "any", "":
		return Any, nil
	}
	return Any, fmt.Errorf("unknown posture token %q", tok)
}

// #endregion parse-posture

// #region catalog-struct

// Catalog is the read-only registry of intermediate moves.
// Iteration order is the load order, which keeps planning deterministic.
type Catalog struct {
	moves []Move
	index map[string]int
}

// #endregion catalog-struct

// #region constructor

// New validates the given moves and returns a Catalog.
// Rejects non-positive durations, unknown posture tokens and duplicate IDs.
func New(moves []Move) (*Catalog, error) {
	c := &Catalog{
		moves: make([]Move, 0, len(moves)),
		index: make(map[string]int, len(moves)),
	}
	for _, m := range moves {
		if err := validateMove(m); err != nil {
			return nil, err
		}
		if _, dup := c.index[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate move %q", ErrInvalidMove, m.ID)
		}
		c.index[m.ID] = len(c.moves)
		c.moves = append(c.moves, m)
	}
	return c, nil
}

func validateMove(m Move) error {
	if m.ID == "" {
		return fmt.Errorf("%w: empty move id", ErrInvalidMove)
	}
	if m.Duration <= 0 {
		return fmt.Errorf("%w: move %q has non-positive duration %.2f", ErrInvalidMove, m.ID, m.Duration)
	}
	for _, p := range []Posture{m.Entry, m.Exit} {
		if _, err := ParsePosture(string(p)); err != nil {
			return fmt.Errorf("%w: move %q: %v", ErrInvalidMove, m.ID, err)
		}
	}
	return nil
}

// #endregion constructor

// #region accessors

// Moves returns all moves in load order. Callers must not mutate the slice.
func (c *Catalog) Moves() []Move {
	return c.moves
}

// Get looks up a move by ID.
func (c *Catalog) Get(id string) (Move, bool) {
	i, ok := c.index[id]
	if !ok {
		return Move{}, false
	}
	return c.moves[i], true
}

// Len returns the number of moves in the catalog.
func (c *Catalog) Len() int {
	return len(c.moves)
}

// MinDuration returns the shortest move duration, or 0 for an empty catalog.
func (c *Catalog) MinDuration() float64 {
	min := 0.0
	for i, m := range c.moves {
		if i == 0 || m.Duration < min {
			min = m.Duration
		}
	}
	return min
}

// #endregion accessors

// #region load-file

// LoadFile reads a JSON move list and returns a validated Catalog.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var moves []Move
	if err := json.Unmarshal(raw, &moves); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i := range moves {
		entry, err := ParsePosture(string(moves[i].Entry))
		if err != nil {
			return nil, fmt.Errorf("%w: move %q: %v", ErrInvalidMove, moves[i].ID, err)
		}
		exit, err := ParsePosture(string(moves[i].Exit))
		if err != nil {
			return nil, fmt.Errorf("%w: move %q: %v", ErrInvalidMove, moves[i].ID, err)
		}
		moves[i].Entry, moves[i].Exit = entry, exit
	}
	return New(moves)
}

// #endregion load-file

// #region validate-poses

// ValidatePoses checks a mandatory pose list before planning starts.
func ValidatePoses(poses []Pose) error {
	if len(poses) == 0 {
		return fmt.Errorf("%w: empty pose list", ErrInvalidPose)
	}
	seen := make(map[string]bool, len(poses))
	for _, p := range poses {
		if p.ID == "" {
			return fmt.Errorf("%w: empty pose id", ErrInvalidPose)
		}
		// Zero is allowed: a pose may be an instantaneous checkpoint.
		if p.Duration < 0 {
			return fmt.Errorf("%w: pose %q has negative duration %.2f", ErrInvalidPose, p.ID, p.Duration)
		}
		for _, tok := range []Posture{p.Entry, p.Exit} {
			if _, err := ParsePosture(string(tok)); err != nil {
				return fmt.Errorf("%w: pose %q: %v", ErrInvalidPose, p.ID, err)
			}
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate pose %q", ErrInvalidPose, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// #endregion validate-poses
