package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-decision
// LogDecision writes a provenance entry to the provenance_log table.
func LogDecision(db *sql.DB, entry SegmentDecision) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO provenance_log (choreo_id, seg_index, from_pose, to_pose, budget, decision, reason, moves_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ChoreoID,
		entry.SegIndex,
		entry.FromPose,
		entry.ToPose,
		entry.Budget,
		entry.Decision,
		nullIfEmpty(entry.Reason),
		nullIfEmpty(entry.MovesJSON),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}

// #endregion log-decision

// #region recent
// Recent returns the newest provenance rows, most recent first.
func Recent(db *sql.DB, limit int) ([]SegmentDecision, error) {
	rows, err := db.Query(
		`SELECT choreo_id, seg_index, from_pose, to_pose, budget, decision, reason, moves_json, created_at
		 FROM provenance_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query provenance: %w", err)
	}
	defer rows.Close()

	var out []SegmentDecision
	for rows.Next() {
		var e SegmentDecision
		var reason, movesJSON sql.NullString
		var createdStr string
		if err := rows.Scan(&e.ChoreoID, &e.SegIndex, &e.FromPose, &e.ToPose, &e.Budget, &e.Decision, &reason, &movesJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan provenance: %w", err)
		}
		e.Reason = reason.String
		e.MovesJSON = movesJSON.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion recent

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
