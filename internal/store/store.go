// Package store persists committed choreographies, their per-segment
// planning records and aggregated move-transition statistics in SQLite.
package store

// #region imports
import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nao-dance/choreography/go-planner/internal/catalog"
	"github.com/nao-dance/choreography/go-planner/internal/orchestrator"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS choreographies (
	choreo_id      TEXT PRIMARY KEY,
	created_at     TEXT NOT NULL,
	total_duration REAL NOT NULL,
	config_json    TEXT NOT NULL,
	catalog_json   TEXT NOT NULL,
	poses_json     TEXT NOT NULL,
	entries_json   TEXT NOT NULL,
	counters_json  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS segments (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	choreo_id  TEXT NOT NULL,
	seg_index  INTEGER NOT NULL,
	from_pose  TEXT NOT NULL,
	to_pose    TEXT NOT NULL,
	budget     REAL NOT NULL,
	duration   REAL NOT NULL,
	cost       REAL NOT NULL,
	expanded   INTEGER NOT NULL,
	moves_json TEXT NOT NULL,
	FOREIGN KEY (choreo_id) REFERENCES choreographies(choreo_id)
);
CREATE INDEX IF NOT EXISTS idx_segments_choreo ON segments(choreo_id, seg_index);

CREATE TABLE IF NOT EXISTS transition_edges (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	from_move  TEXT NOT NULL,
	to_move    TEXT NOT NULL,
	count      INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL,
	UNIQUE(from_move, to_move)
);

CREATE TABLE IF NOT EXISTS provenance_log (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	choreo_id  TEXT NOT NULL,
	seg_index  INTEGER NOT NULL,
	from_pose  TEXT NOT NULL,
	to_pose    TEXT NOT NULL,
	budget     REAL NOT NULL,
	decision   TEXT NOT NULL,
	reason     TEXT,
	moves_json TEXT,
	created_at TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store manages the choreography database.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region commit
// Commit persists a planned choreography atomically: the choreography row
// (with the catalog and pose list that produced it, so runs can be
// replayed), one row per segment, and the bumped transition edges for
// every consecutive move pair inside each segment.
func (s *Store) Commit(ch *orchestrator.Choreography, cfg orchestrator.Config, moves []catalog.Move, poses []catalog.Pose) (Record, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	entriesJSON, err := json.Marshal(ch.Entries)
	if err != nil {
		return Record{}, fmt.Errorf("marshal entries: %w", err)
	}
	countersJSON, err := json.Marshal(ch.Counters)
	if err != nil {
		return Record{}, fmt.Errorf("marshal counters: %w", err)
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return Record{}, fmt.Errorf("marshal config: %w", err)
	}
	catalogJSON, err := json.Marshal(moves)
	if err != nil {
		return Record{}, fmt.Errorf("marshal catalog: %w", err)
	}
	posesJSON, err := json.Marshal(poses)
	if err != nil {
		return Record{}, fmt.Errorf("marshal poses: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Record{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO choreographies (choreo_id, created_at, total_duration, config_json, catalog_json, poses_json, entries_json, counters_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, now.Format(time.RFC3339Nano), ch.TotalDuration, string(cfgJSON),
		string(catalogJSON), string(posesJSON), string(entriesJSON), string(countersJSON),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert choreography: %w", err)
	}

	for _, seg := range ch.Segments {
		movesJSON, err := json.Marshal(seg.Moves)
		if err != nil {
			return Record{}, fmt.Errorf("marshal segment %d moves: %w", seg.Index, err)
		}
		_, err = tx.Exec(
			`INSERT INTO segments (choreo_id, seg_index, from_pose, to_pose, budget, duration, cost, expanded, moves_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, seg.Index, seg.FromPose, seg.ToPose, seg.Budget, seg.Duration, seg.Cost, seg.Expanded, string(movesJSON),
		)
		if err != nil {
			return Record{}, fmt.Errorf("insert segment %d: %w", seg.Index, err)
		}

		for j := 1; j < len(seg.Moves); j++ {
			if err := bumpTransition(tx, seg.Moves[j-1], seg.Moves[j], now); err != nil {
				return Record{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("commit: %w", err)
	}

	rec := Record{
		ChoreoID:      id,
		CreatedAt:     now,
		TotalDuration: ch.TotalDuration,
		ConfigJSON:    string(cfgJSON),
		Catalog:       moves,
		Poses:         poses,
		Choreography:  *ch,
	}
	return rec, nil
}

func bumpTransition(tx *sql.Tx, from, to string, now time.Time) error {
	_, err := tx.Exec(
		`INSERT INTO transition_edges (from_move, to_move, count, updated_at)
		 VALUES (?, ?, 1, ?)
		 ON CONFLICT(from_move, to_move) DO UPDATE SET
		   count = transition_edges.count + 1,
		   updated_at = ?`,
		from, to, now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("bump transition %s -> %s: %w", from, to, err)
	}
	return nil
}

// #endregion commit

// #region get
// Get retrieves a stored choreography by ID.
func (s *Store) Get(id string) (Record, error) {
	row := s.db.QueryRow(
		`SELECT choreo_id, created_at, total_duration, config_json, catalog_json, poses_json, entries_json, counters_json
		 FROM choreographies WHERE choreo_id = ?`, id,
	)
	rec, err := scanRecord(row)
	if err != nil {
		return Record{}, fmt.Errorf("get choreography %s: %w", id, err)
	}
	rec.Choreography.Segments, err = s.segments(id)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Latest retrieves the most recently committed choreography.
func (s *Store) Latest() (Record, error) {
	row := s.db.QueryRow(
		`SELECT choreo_id, created_at, total_duration, config_json, catalog_json, poses_json, entries_json, counters_json
		 FROM choreographies ORDER BY created_at DESC LIMIT 1`,
	)
	rec, err := scanRecord(row)
	if err != nil {
		return Record{}, fmt.Errorf("latest choreography: %w", err)
	}
	rec.Choreography.Segments, err = s.segments(rec.ChoreoID)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var createdStr, catalogJSON, posesJSON, entriesJSON, countersJSON string
	err := row.Scan(&rec.ChoreoID, &createdStr, &rec.TotalDuration, &rec.ConfigJSON, &catalogJSON, &posesJSON, &entriesJSON, &countersJSON)
	if err != nil {
		return Record{}, err
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	if err := json.Unmarshal([]byte(catalogJSON), &rec.Catalog); err != nil {
		return Record{}, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if err := json.Unmarshal([]byte(posesJSON), &rec.Poses); err != nil {
		return Record{}, fmt.Errorf("unmarshal poses: %w", err)
	}
	if err := json.Unmarshal([]byte(entriesJSON), &rec.Choreography.Entries); err != nil {
		return Record{}, fmt.Errorf("unmarshal entries: %w", err)
	}
	if err := json.Unmarshal([]byte(countersJSON), &rec.Choreography.Counters); err != nil {
		return Record{}, fmt.Errorf("unmarshal counters: %w", err)
	}
	rec.Choreography.TotalDuration = rec.TotalDuration
	return rec, nil
}

func (s *Store) segments(choreoID string) ([]orchestrator.SegmentResult, error) {
	rows, err := s.db.Query(
		`SELECT seg_index, from_pose, to_pose, budget, duration, cost, expanded, moves_json
		 FROM segments WHERE choreo_id = ? ORDER BY seg_index`, choreoID,
	)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer rows.Close()

	var segs []orchestrator.SegmentResult
	for rows.Next() {
		var seg orchestrator.SegmentResult
		var movesJSON string
		if err := rows.Scan(&seg.Index, &seg.FromPose, &seg.ToPose, &seg.Budget, &seg.Duration, &seg.Cost, &seg.Expanded, &movesJSON); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		if err := json.Unmarshal([]byte(movesJSON), &seg.Moves); err != nil {
			return nil, fmt.Errorf("unmarshal segment moves: %w", err)
		}
		segs = append(segs, seg)
	}
	return segs, rows.Err()
}

// #endregion get

// #region list
// List returns the most recent choreographies, newest first, without
// their segment breakdowns.
func (s *Store) List(limit int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT choreo_id, created_at, total_duration, config_json, catalog_json, poses_json, entries_json, counters_json
		 FROM choreographies ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list choreographies: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// #endregion list

// #region transitions
// TopTransitions returns the most frequent move→move adjacencies.
func (s *Store) TopTransitions(limit int) ([]Transition, error) {
	rows, err := s.db.Query(
		`SELECT from_move, to_move, count, updated_at
		 FROM transition_edges ORDER BY count DESC, from_move, to_move LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var out []Transition
	for rows.Next() {
		var tr Transition
		var updatedStr string
		if err := rows.Scan(&tr.FromMove, &tr.ToMove, &tr.Count, &updatedStr); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		tr.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
		out = append(out, tr)
	}
	return out, rows.Err()
}

// #endregion transitions
