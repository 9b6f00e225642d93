package replay

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nao-dance/choreography/go-planner/internal/catalog"
	"github.com/nao-dance/choreography/go-planner/internal/orchestrator"
	"github.com/nao-dance/choreography/go-planner/internal/plan"
)

// #endregion

// #region fixture-types

// Fixture is the top-level JSON structure for a planning replay: the full
// planner input plus the expected outcome.
type Fixture struct {
	Description string          `json:"description"`
	Catalog     []catalog.Move  `json:"catalog"`
	Poses       []catalog.Pose  `json:"poses"`
	Config      FixtureConfig   `json:"config"`
	Expected    FixtureExpected `json:"expected"`
}

// FixtureConfig mirrors orchestrator.Config with JSON tags.
type FixtureConfig struct {
	TotalSlot            float64 `json:"total_slot"`
	Alpha                float64 `json:"alpha"`
	Tolerance            float64 `json:"tolerance"`
	Heuristic            string  `json:"heuristic"`
	NodeLimit            int     `json:"node_limit"`
	MinIntermediateMoves int     `json:"min_intermediate_moves"`
}

// ToConfig converts the fixture form into a planner configuration.
func (c FixtureConfig) ToConfig() orchestrator.Config {
	return orchestrator.Config{
		TotalSlot:            c.TotalSlot,
		Alpha:                c.Alpha,
		Tolerance:            c.Tolerance,
		Heuristic:            plan.Heuristic(c.Heuristic),
		NodeLimit:            c.NodeLimit,
		MinIntermediateMoves: c.MinIntermediateMoves,
	}
}

// FromConfig converts a planner configuration into the fixture form.
func FromConfig(cfg orchestrator.Config) FixtureConfig {
	return FixtureConfig{
		TotalSlot:            cfg.TotalSlot,
		Alpha:                cfg.Alpha,
		Tolerance:            cfg.Tolerance,
		Heuristic:            string(cfg.Heuristic),
		NodeLimit:            cfg.NodeLimit,
		MinIntermediateMoves: cfg.MinIntermediateMoves,
	}
}

// FixtureExpected captures the expected outcome of the run. Entries is the
// ordered list of entry IDs; Failure, when set, names the expected error
// class instead: "unsatisfiable", "search_limit" or "config".
type FixtureExpected struct {
	Entries       []string `json:"entries,omitempty"`
	TotalDuration float64  `json:"total_duration,omitempty"`
	Failure       string   `json:"failure,omitempty"`
}

// #endregion fixture-types

// #region load-save

// LoadFixture reads and parses a fixture JSON file.
func LoadFixture(path string) (Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

// SaveFixture writes a fixture as indented JSON.
func SaveFixture(path string, f Fixture) error {
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	return nil
}

// #endregion load-save
