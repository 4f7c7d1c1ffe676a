// Conexus - Candidate-Job Matching and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conexus

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/conexus/internal/config"
	"github.com/tomtom215/conexus/internal/logging"
	"github.com/tomtom215/conexus/internal/models"
)

// DuckDBStore persists match results in an embedded DuckDB database.
//
// The store owns its connection pool and schema. Aggregates run in SQL
// so stats stay cheap even with millions of rows.
//
// Thread Safety: safe for concurrent use; database/sql pools connections
// and DuckDB serializes writers internally.
type DuckDBStore struct {
	conn *sql.DB
	path string
}

// Compile-time interface check.
var _ MatchStore = (*DuckDBStore)(nil)

// NewDuckDB opens (or creates) the match database and initializes its schema.
func NewDuckDB(cfg *config.DatabaseConfig) (*DuckDBStore, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	// Ensure the parent directory exists for file-backed databases.
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if path != ":memory:" {
		dbDir := filepath.Dir(path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	connStr := path
	if path != ":memory:" {
		connStr = path + "?access_mode=read_write"
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &DuckDBStore{
		conn: conn,
		path: path,
	}

	s.configureConnectionPool()

	if err := s.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return s, nil
}

// configureConnectionPool sets connection pool parameters
func (s *DuckDBStore) configureConnectionPool() {
	s.conn.SetMaxOpenConns(runtime.NumCPU())
	s.conn.SetMaxIdleConns(2)
	s.conn.SetConnMaxLifetime(time.Hour)
	s.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates the match_results table and its indexes.
func (s *DuckDBStore) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS match_results (
			id UUID PRIMARY KEY,
			candidate_id TEXT NOT NULL,
			job_id TEXT NOT NULL,
			score DOUBLE NOT NULL,
			skills_score DOUBLE NOT NULL,
			experience_score DOUBLE NOT NULL,
			education_score DOUBLE NOT NULL,
			location_score DOUBLE NOT NULL,
			salary_score DOUBLE NOT NULL,
			confidence DOUBLE NOT NULL,
			reasons TEXT,
			algorithm_version TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_match_results_candidate ON match_results(candidate_id)`,
		`CREATE INDEX IF NOT EXISTS idx_match_results_job ON match_results(job_id)`,
		`CREATE INDEX IF NOT EXISTS idx_match_results_created ON match_results(created_at)`,
	}

	for _, query := range queries {
		if _, err := s.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// ensureContext creates a context with 30-second timeout if none provided
func (s *DuckDBStore) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

// SaveMatchResult persists one match result snapshot.
func (s *DuckDBStore) SaveMatchResult(ctx context.Context, m *models.MatchResult) error {
	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if m.Status == "" {
		m.Status = models.MatchStatusPending
	}

	reasons, err := json.Marshal(m.Reasons)
	if err != nil {
		return fmt.Errorf("failed to marshal reasons: %w", err)
	}

	query := `INSERT INTO match_results (
		id, candidate_id, job_id,
		score, skills_score, experience_score, education_score, location_score, salary_score,
		confidence, reasons, algorithm_version, status, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.conn.ExecContext(ctx, query,
		m.ID, m.CandidateID, m.JobID,
		m.Score, m.Breakdown.Skills, m.Breakdown.Experience, m.Breakdown.Education,
		m.Breakdown.Location, m.Breakdown.Salary,
		m.Confidence, string(reasons), m.AlgorithmVersion, string(m.Status), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert match result: %w", err)
	}

	return nil
}

// matchColumns is the shared SELECT column list for scanMatch.
const matchColumns = `id, candidate_id, job_id,
	score, skills_score, experience_score, education_score, location_score, salary_score,
	confidence, reasons, algorithm_version, status, created_at`

// scanMatch scans one match_results row.
func scanMatch(row interface{ Scan(...interface{}) error }) (*models.MatchResult, error) {
	var m models.MatchResult
	var reasons sql.NullString
	var status string

	err := row.Scan(
		&m.ID, &m.CandidateID, &m.JobID,
		&m.Score, &m.Breakdown.Skills, &m.Breakdown.Experience, &m.Breakdown.Education,
		&m.Breakdown.Location, &m.Breakdown.Salary,
		&m.Confidence, &reasons, &m.AlgorithmVersion, &status, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Breakdown.Overall = m.Score / 100
	m.Status = models.MatchStatus(status)
	if reasons.Valid && reasons.String != "" {
		if err := json.Unmarshal([]byte(reasons.String), &m.Reasons); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reasons: %w", err)
		}
	}

	return &m, nil
}

// GetMatch returns a single match result by ID.
func (s *DuckDBStore) GetMatch(ctx context.Context, id uuid.UUID) (*models.MatchResult, error) {
	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	// Explicit CAST because the driver passes uuid.UUID as VARCHAR in
	// comparisons, causing type mismatch errors against UUID columns.
	query := `SELECT ` + matchColumns + ` FROM match_results WHERE id = CAST(? AS UUID)`

	m, err := scanMatch(s.conn.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("match", id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}

	return m, nil
}

// ListMatches returns persisted results matching the filters, newest first.
func (s *DuckDBStore) ListMatches(ctx context.Context, f models.MatchFilters, limit, offset int) ([]models.MatchResult, error) {
	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	query := `SELECT ` + matchColumns + ` FROM match_results WHERE 1=1`
	var args []interface{}

	if f.CandidateID != "" {
		query += ` AND candidate_id = ?`
		args = append(args, f.CandidateID)
	}
	if f.JobID != "" {
		query += ` AND job_id = ?`
		args = append(args, f.JobID)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.MinScore != nil {
		query += ` AND score >= ?`
		args = append(args, *f.MinScore)
	}

	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query match results: %w", err)
	}
	defer rows.Close()

	var results []models.MatchResult
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match result: %w", err)
		}
		results = append(results, *m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match results: %w", err)
	}

	return results, nil
}

// GetMatchStats aggregates over persisted match results.
func (s *DuckDBStore) GetMatchStats(ctx context.Context, f models.StatsFilters) (*models.MatchStats, error) {
	ctx, cancel := s.ensureContext(ctx)
	defer cancel()

	// The seven-day cutoff is computed here rather than with a SQL
	// interval so both store backends agree on clock handling.
	cutoff := time.Now().UTC().AddDate(0, 0, -7)

	query := `
	SELECT
		COUNT(*) AS total_matches,
		COALESCE(AVG(score), 0) AS average_score,
		COUNT(*) FILTER (WHERE score >= ?) AS high_quality,
		COUNT(*) FILTER (WHERE created_at >= ?) AS last_seven_days
	FROM match_results
	WHERE 1=1`

	args := []interface{}{highQualityThreshold, cutoff}

	if f.CandidateID != "" {
		query += ` AND candidate_id = ?`
		args = append(args, f.CandidateID)
	}
	if f.JobID != "" {
		query += ` AND job_id = ?`
		args = append(args, f.JobID)
	}

	var stats models.MatchStats
	err := s.conn.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalMatches, &stats.AverageScore, &stats.HighQuality, &stats.LastSevenDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query match stats: %w", err)
	}

	return &stats, nil
}

// Ping checks if the database connection is alive
func (s *DuckDBStore) Ping(ctx context.Context) error {
	if s.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.conn.PingContext(ctx)
}

// Close flushes the WAL and closes the database connection.
func (s *DuckDBStore) Close() error {
	if s.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := s.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
	}

	return s.conn.Close()
}

// closeQuietly closes without surfacing the error, for cleanup paths
// that already carry a primary error.
func closeQuietly(c interface{ Close() error }) {
	_ = c.Close()
}
