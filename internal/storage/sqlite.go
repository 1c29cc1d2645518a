// Package storage provides SQLite-based persistence for arena runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arena2d/internal/core"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one stored play session of an arena.
type Run struct {
	ID          string
	ArenaID     string
	Fingerprint string
	Ticks       int
	Elapsed     float64 // simulated seconds
	Distance    float64
	Contacts    int
	Rejections  int
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			arena_id TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			elapsed REAL NOT NULL DEFAULT 0,
			distance REAL NOT NULL DEFAULT 0,
			contacts INTEGER NOT NULL DEFAULT 0,
			rejections INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_arena_id ON runs(arena_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(arena_id, distance DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its generated id.
func (s *Store) SaveRun(sum core.RunSummary) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, arena_id, fingerprint, ticks, elapsed, distance, contacts, rejections)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		sum.GameID,
		sum.Fingerprint,
		sum.Ticks,
		sum.Elapsed,
		sum.Distance,
		sum.Contacts,
		sum.Rejections,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return id, nil
}

const runColumns = `id, arena_id, fingerprint, ticks, elapsed, distance, contacts, rejections, created_at`

// RecentRuns returns the newest runs first. An empty arenaID matches every arena.
func (s *Store) RecentRuns(arenaID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR arena_id = ?
		 ORDER BY seq DESC
		 LIMIT ?`,
		arenaID, arenaID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestRun returns the run with the longest distance for the arena.
// Returns nil if the arena has no runs.
func (s *Store) BestRun(arenaID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE arena_id = ?
		 ORDER BY distance DESC, seq ASC
		 LIMIT 1`,
		arenaID,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ClearRuns deletes all runs for the given arena.
func (s *Store) ClearRuns(arenaID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE arena_id = ?", arenaID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// ArenaStats contains aggregated statistics for an arena.
type ArenaStats struct {
	ArenaID       string
	Runs          int
	BestDistance  float64
	TotalDistance float64
	TotalTime     float64 // simulated seconds
	Contacts      int
	Rejections    int
	LastPlayed    time.Time
}

// AvgDistance returns the mean distance per run.
func (a ArenaStats) AvgDistance() float64 {
	if a.Runs == 0 {
		return 0
	}
	return a.TotalDistance / float64(a.Runs)
}

// ArenaStats retrieves aggregated statistics for a specific arena.
func (s *Store) ArenaStats(arenaID string) (*ArenaStats, error) {
	stats := &ArenaStats{ArenaID: arenaID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(distance), 0), COALESCE(SUM(distance), 0),
		        COALESCE(SUM(elapsed), 0), COALESCE(SUM(contacts), 0),
		        COALESCE(SUM(rejections), 0), MAX(created_at)
		 FROM runs WHERE arena_id = ?`,
		arenaID,
	).Scan(
		&stats.Runs,
		&stats.BestDistance,
		&stats.TotalDistance,
		&stats.TotalTime,
		&stats.Contacts,
		&stats.Rejections,
		&lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get arena stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllArenaStats retrieves statistics for every arena that has been played.
func (s *Store) AllArenaStats() (map[string]*ArenaStats, error) {
	rows, err := s.db.Query(
		`SELECT arena_id, COUNT(*), MAX(distance), SUM(distance), SUM(elapsed),
		        SUM(contacts), SUM(rejections), MAX(created_at)
		 FROM runs
		 GROUP BY arena_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all arena stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ArenaStats)
	for rows.Next() {
		var a ArenaStats
		var lastPlayed any
		if err := rows.Scan(&a.ArenaID, &a.Runs, &a.BestDistance, &a.TotalDistance,
			&a.TotalTime, &a.Contacts, &a.Rejections, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		a.LastPlayed = parseTime(lastPlayed)
		stats[a.ArenaID] = &a
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt any
	err := sc.Scan(
		&r.ID,
		&r.ArenaID,
		&r.Fingerprint,
		&r.Ticks,
		&r.Elapsed,
		&r.Distance,
		&r.Contacts,
		&r.Rejections,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
