package store

import (
	"time"

	"github.com/nao-dance/choreography/go-planner/internal/catalog"
	"github.com/nao-dance/choreography/go-planner/internal/orchestrator"
)

// #region record

// Record is a persisted choreography together with the full planner
// input that produced it, sufficient to replay the run.
type Record struct {
	ChoreoID      string
	CreatedAt     time.Time
	TotalDuration float64
	ConfigJSON    string
	Catalog       []catalog.Move
	Poses         []catalog.Pose
	Choreography  orchestrator.Choreography
}

// #endregion record

// #region transition

// Transition is an aggregated move→move adjacency observed across all
// committed choreographies.
type Transition struct {
	FromMove  string
	ToMove    string
	Count     int64
	UpdatedAt time.Time
}

// #endregion transition
