package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/wikiextract/internal/model"
)

// RunDB provides SQLite-based storage for run records.
// It manages connection pooling and provides methods for saving and
// querying processing history.
//
// Design decision: We use a single database file per corpus directory
// rather than one per corpus file. The history of a directory is usually
// read as a whole, and a single file simplifies backup/restore.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// timeFormat is how run timestamps are stored. It matches the SQLite
// default datetime format; all stored values are UTC.
const timeFormat = "2006-01-02 15:04:05"

// Open opens or creates a RunDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, "wikiextract.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		// Check if database file exists
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Run records store one row per parse, clean, or export run
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		command TEXT NOT NULL,
		input_file TEXT NOT NULL,
		output_file TEXT,
		row_count INTEGER DEFAULT 0,
		skipped INTEGER DEFAULT 0,
		timed_out INTEGER DEFAULT 0,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_command ON runs(command);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun inserts or updates a run record.
// Uses UPSERT keyed on the run ID so that a record saved when a run
// starts can be saved again with its final counters.
func (rdb *RunDB) SaveRun(ctx context.Context, record *model.RunRecord) error {
	query := `
	INSERT INTO runs (id, command, input_file, output_file, row_count, skipped, timed_out, started_at, finished_at, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		output_file = excluded.output_file,
		row_count = excluded.row_count,
		skipped = excluded.skipped,
		timed_out = excluded.timed_out,
		finished_at = excluded.finished_at,
		error = excluded.error
	`

	var finishedAt interface{}
	if !record.FinishedAt.IsZero() {
		finishedAt = record.FinishedAt.UTC().Format(timeFormat)
	}

	_, err := rdb.db.ExecContext(ctx, query,
		record.ID,
		record.Command,
		record.InputFile,
		record.OutputFile,
		record.Rows,
		record.Skipped,
		record.TimedOut,
		record.StartedAt.UTC().Format(timeFormat),
		finishedAt,
		record.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to save run record: %w", err)
	}

	return nil
}

// GetRun retrieves a run record by its ID.
// Returns nil without an error when no record exists.
func (rdb *RunDB) GetRun(ctx context.Context, id string) (*model.RunRecord, error) {
	query := `
	SELECT id, command, input_file, output_file, row_count, skipped, timed_out, started_at, finished_at, error
	FROM runs
	WHERE id = ?
	`

	record, err := scanRun(rdb.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run record: %w", err)
	}

	return record, nil
}

// LatestRun retrieves the most recent run, optionally filtered by command.
// Returns nil without an error when no run matches.
func (rdb *RunDB) LatestRun(ctx context.Context, command string) (*model.RunRecord, error) {
	query := `
	SELECT id, command, input_file, output_file, row_count, skipped, timed_out, started_at, finished_at, error
	FROM runs
	WHERE 1=1
	`
	args := make([]interface{}, 0)

	if command != "" {
		query += " AND command = ?"
		args = append(args, command)
	}

	query += " ORDER BY started_at DESC, id DESC LIMIT 1"

	record, err := scanRun(rdb.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	return record, nil
}

// ListRuns retrieves run records ordered from newest to oldest.
// Empty filters match everything; a non-positive limit returns every record.
func (rdb *RunDB) ListRuns(ctx context.Context, command, inputFile string, limit int) ([]*model.RunRecord, error) {
	query := `
	SELECT id, command, input_file, output_file, row_count, skipped, timed_out, started_at, finished_at, error
	FROM runs
	WHERE 1=1
	`
	args := make([]interface{}, 0)

	if command != "" {
		query += " AND command = ?"
		args = append(args, command)
	}
	if inputFile != "" {
		query += " AND input_file = ?"
		args = append(args, inputFile)
	}

	query += " ORDER BY started_at DESC, id DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []*model.RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		results = append(results, record)
	}

	return results, rows.Err()
}

// CountRuns returns the number of stored run records.
func (rdb *RunDB) CountRuns(ctx context.Context) (int, error) {
	var count int
	if err := rdb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// ListInputs returns the distinct input files that have recorded runs.
func (rdb *RunDB) ListInputs(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT input_file FROM runs
	ORDER BY input_file
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inputs: %w", err)
	}
	defer rows.Close()

	var inputs []string
	for rows.Next() {
		var input string
		if err := rows.Scan(&input); err != nil {
			return nil, fmt.Errorf("failed to scan input: %w", err)
		}
		inputs = append(inputs, input)
	}

	return inputs, rows.Err()
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRun reads one run record from a query result.
func scanRun(row rowScanner) (*model.RunRecord, error) {
	var record model.RunRecord
	var outputFile, finishedAt, errorMessage sql.NullString
	var startedAt string

	err := row.Scan(
		&record.ID,
		&record.Command,
		&record.InputFile,
		&outputFile,
		&record.Rows,
		&record.Skipped,
		&record.TimedOut,
		&startedAt,
		&finishedAt,
		&errorMessage,
	)
	if err != nil {
		return nil, err
	}

	record.OutputFile = outputFile.String
	record.ErrorMessage = errorMessage.String

	// Parse timestamps (SQLite may return different formats depending on
	// version/configuration)
	record.StartedAt = parseTimestamp(startedAt)
	if finishedAt.Valid && finishedAt.String != "" {
		record.FinishedAt = parseTimestamp(finishedAt.String)
	}

	return &record, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}
