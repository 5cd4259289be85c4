package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the history database.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across queries.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		command TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		status TEXT NOT NULL,
		pages INTEGER NOT NULL,
		valid INTEGER NOT NULL,
		invalid INTEGER NOT NULL,
		average_score REAL NOT NULL,
		grade TEXT NOT NULL,
		gate_passed INTEGER NOT NULL,
		manifest_hash TEXT
	);
	CREATE TABLE IF NOT EXISTS page_scores (
		run_id TEXT NOT NULL REFERENCES runs(id),
		page_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		PRIMARY KEY (run_id, page_id)
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordRun stores the run and its page scores in one transaction.
func (s *SQLiteStore) RecordRun(ctx context.Context, run Run, scores []PageScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, command, started_at, duration_ms, status, pages, valid, invalid, average_score, grade, gate_passed, manifest_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Command, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(), run.Status,
		run.Pages, run.Valid, run.Invalid, run.AverageScore, run.Grade, boolInt(run.GatePassed), run.ManifestHash,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO page_scores (run_id, page_id, score, errors, warnings) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare page scores: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, ps := range scores {
		if _, err := stmt.ExecContext(ctx, run.ID, ps.PageID, ps.Score, ps.Errors, ps.Warnings); err != nil {
			return fmt.Errorf("insert page score %s: %w", ps.PageID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, command, started_at, duration_ms, status, pages, valid, invalid, average_score, grade, gate_passed, manifest_hash
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			startedMS int64
			durMS     int64
			gate      int
			hash      sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Command, &startedMS, &durMS, &r.Status, &r.Pages, &r.Valid, &r.Invalid,
			&r.AverageScore, &r.Grade, &gate, &hash); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.UnixMilli(startedMS).UTC()
		r.Duration = time.Duration(durMS) * time.Millisecond
		r.GatePassed = gate != 0
		r.ManifestHash = hash.String
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

// Scores returns the page scores stored for a run, ordered by page ID.
func (s *SQLiteStore) Scores(ctx context.Context, runID string) ([]PageScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT page_id, score, errors, warnings FROM page_scores WHERE run_id = ? ORDER BY page_id", runID)
	if err != nil {
		return nil, fmt.Errorf("query page scores: %w", err)
	}
	defer rows.Close()

	var out []PageScore
	for rows.Next() {
		var ps PageScore
		if err := rows.Scan(&ps.PageID, &ps.Score, &ps.Errors, &ps.Warnings); err != nil {
			return nil, fmt.Errorf("scan page score: %w", err)
		}
		out = append(out, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Regressions lists pages present in both runs whose score dropped by at
// least minDrop points, largest drop first, then by page ID.
func (s *SQLiteStore) Regressions(ctx context.Context, previousRunID, currentRunID string, minDrop int) ([]Regression, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if minDrop <= 0 {
		minDrop = 1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT cur.page_id, prev.score, cur.score
		 FROM page_scores cur
		 JOIN page_scores prev ON prev.page_id = cur.page_id AND prev.run_id = ?
		 WHERE cur.run_id = ? AND prev.score - cur.score >= ?
		 ORDER BY prev.score - cur.score DESC, cur.page_id`,
		previousRunID, currentRunID, minDrop)
	if err != nil {
		return nil, fmt.Errorf("query regressions: %w", err)
	}
	defer rows.Close()

	var out []Regression
	for rows.Next() {
		var r Regression
		if err := rows.Scan(&r.PageID, &r.Previous, &r.Current); err != nil {
			return nil, fmt.Errorf("scan regression: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
