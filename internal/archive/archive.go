package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/feedfold/feedfold/internal/model"
)

// dbFileName is the archive database file inside the configured directory.
const dbFileName = "feedfold.db"

// Archive stores completed merge runs in SQLite.
type Archive struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Archive behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended.
	EnableWAL bool
}

// DefaultOptions returns the default archive options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// RunRecord is one archived merge run.
type RunRecord struct {
	// ID is the run's row id, assigned on insert.
	ID int64

	// CreatedAt is when the run was recorded.
	CreatedAt time.Time

	// Title is the merged feed's title at the time of the run.
	Title string

	// Stats holds the run's counters.
	Stats model.RunStats
}

// Open opens or creates an Archive in the given directory.
func Open(dir string, opts Options) (*Archive, error) {
	dbPath := filepath.Join(dir, dbFileName)

	var dsn string
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("archive not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("check archive path: %w", err)
		}
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	// SQLite supports only one writer; a single pooled connection
	// avoids lock contention entirely.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	a := &Archive{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	if err := a.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create archive tables: %w", err)
	}

	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Path returns the archive database file path.
func (a *Archive) Path() string {
	return a.dbPath
}

// createTables creates the schema if it doesn't exist.
func (a *Archive) createTables() error {
	schema := `
	-- One row per completed merge run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		title TEXT NOT NULL,
		sources INTEGER NOT NULL,
		fetched INTEGER NOT NULL,
		filtered INTEGER NOT NULL,
		duplicates INTEGER NOT NULL,
		kept INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

	-- Merged items of each run, in output order
	CREATE TABLE IF NOT EXISTS run_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		item_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_run_items_run ON run_items(run_id);
	`

	_, err := a.db.ExecContext(context.Background(), schema)
	return err
}

// RecordRun inserts one completed run with its merged items and
// returns the new run id.
func (a *Archive) RecordRun(ctx context.Context, title string, stats model.RunStats, items []model.Item) (int64, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin archive transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (title, sources, fetched, filtered, duplicates, kept)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		title, stats.Sources, stats.Fetched, stats.Filtered, stats.Duplicates, stats.Kept,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	for i, item := range items {
		itemJSON, err := json.Marshal(item)
		if err != nil {
			return 0, fmt.Errorf("serialize item %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_items (run_id, position, item_json) VALUES (?, ?, ?)`,
			runID, i, string(itemJSON),
		); err != nil {
			return 0, fmt.Errorf("insert item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first, up to limit.
// A limit of zero or less returns all runs.
func (a *Archive) Runs(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT id, created_at, title, sources, fetched, filtered, duplicates, kept
		FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Close error after full read is unactionable

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Title,
			&r.Stats.Sources, &r.Stats.Fetched, &r.Stats.Filtered,
			&r.Stats.Duplicates, &r.Stats.Kept); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt = parseTimestamp(created)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

// Items returns the merged items of one archived run in output order.
func (a *Archive) Items(ctx context.Context, runID int64) ([]model.Item, error) {
	var exists int
	if err := a.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("look up run: %w", err)
	}
	if exists == 0 {
		return nil, ErrRunNotFound
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT item_json FROM run_items WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run items: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Close error after full read is unactionable

	var items []model.Item
	for rows.Next() {
		var itemJSON string
		if err := rows.Scan(&itemJSON); err != nil {
			return nil, fmt.Errorf("scan run item: %w", err)
		}
		var item model.Item
		if err := json.Unmarshal([]byte(itemJSON), &item); err != nil {
			return nil, fmt.Errorf("decode run item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run items: %w", err)
	}
	return items, nil
}

// ErrRunNotFound is returned when no archived run has the given id.
var ErrRunNotFound = errors.New("archived run not found")

// parseTimestamp handles the timestamp formats SQLite may return.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05Z",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
