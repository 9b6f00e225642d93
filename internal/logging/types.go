package logging

import "time"

// #region segment-decision
// SegmentDecision is a single row in the provenance_log table: one
// planning decision for one segment of a choreography run.
type SegmentDecision struct {
	ChoreoID  string
	SegIndex  int
	FromPose  string
	ToPose    string
	Budget    float64
	Decision  string // "planned" | "failed"
	Reason    string
	MovesJSON string
	CreatedAt time.Time
}

// #endregion segment-decision

// #region plan-record
// PlanRecord captures the planning inputs and outputs for one segment.
// Serialized as JSON into provenance_log.moves_json for deterministic replay.
type PlanRecord struct {
	Moves    []string `json:"moves"`
	Duration float64  `json:"duration"`
	Cost     float64  `json:"cost"`
	Expanded int      `json:"expanded"`
}

// #endregion plan-record
