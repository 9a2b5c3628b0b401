// Package store persists privacy-conscious visitor records and the
// hydration pass log in sqlite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// VisitorMetric is one page view. Only a salted hash of the IP is kept.
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Theme     string    `json:"theme,omitempty"`
}

// HydrationRecord is the outcome of one hydration pass.
type HydrationRecord struct {
	PassID     string    `json:"pass_id"`
	State      string    `json:"state"`
	Kind       string    `json:"kind,omitempty"`
	Error      string    `json:"error,omitempty"`
	Source     string    `json:"source"`
	Faults     int       `json:"faults"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64             `json:"total_visitors"`
	UniqueVisitors   int64             `json:"unique_visitors"`
	VisitorsToday    int64             `json:"visitors_today"`
	VisitorsThisWeek int64             `json:"visitors_this_week"`
	TotalHydrations  int64             `json:"total_hydrations"`
	FailedHydrations int64             `json:"failed_hydrations"`
	RecentVisitors   []VisitorMetric   `json:"recent_visitors"`
	RecentHydrations []HydrationRecord `json:"recent_hydrations"`
}

// Store wraps the sqlite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	theme TEXT,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
CREATE TABLE IF NOT EXISTS hydrations (
	pass_id TEXT PRIMARY KEY,
	state TEXT NOT NULL,
	kind TEXT,
	error TEXT,
	source TEXT,
	faults INTEGER DEFAULT 0,
	duration_ms INTEGER DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_hydrations_created ON hydrations(created_at);
`

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordVisit stores a page view.
func (s *Store) RecordVisit(ctx context.Context, v VisitorMetric) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, theme, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, v.Theme, v.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecordHydration stores a hydration pass outcome.
func (s *Store) RecordHydration(ctx context.Context, r HydrationRecord) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hydrations (pass_id, state, kind, error, source, faults, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.PassID, r.State, r.Kind, r.Error, r.Source, r.Faults, r.DurationMS, r.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("record hydration %s: %w", r.PassID, err)
	}
	return nil
}

// CleanupVisitors deletes visitor records older than retention and returns
// how many were removed.
func (s *Store) CleanupVisitors(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).UTC()
	result, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	return result.RowsAffected()
}

// RecentVisitors returns the newest visitor records.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]VisitorMetric, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), COALESCE(theme, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visitors: %w", err)
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Theme, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// RecentHydrations returns the newest hydration records.
func (s *Store) RecentHydrations(ctx context.Context, limit int) ([]HydrationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pass_id, state, COALESCE(kind, ''), COALESCE(error, ''), COALESCE(source, ''),
		       faults, duration_ms, created_at
		FROM hydrations
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query hydrations: %w", err)
	}
	defer rows.Close()

	var records []HydrationRecord
	for rows.Next() {
		var r HydrationRecord
		if err := rows.Scan(&r.PassID, &r.State, &r.Kind, &r.Error, &r.Source, &r.Faults, &r.DurationMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan hydration: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Stats gathers the dashboard summary.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour)}},
		{&stats.TotalHydrations, `SELECT COUNT(*) FROM hydrations`, nil},
		{&stats.FailedHydrations, `SELECT COUNT(*) FROM hydrations WHERE state = 'failed'`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	var err error
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentHydrations, err = s.RecentHydrations(ctx, 20); err != nil {
		return nil, err
	}
	return stats, nil
}
