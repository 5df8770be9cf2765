package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"mediacat/internal/relation"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes incompatibly.
const schemaVersion = 1

// ErrSchemaMismatch indicates an export database written by another version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store wraps the export database.
type Store struct {
	db   *sql.DB
	path string
}

// NotFound is one row of the not_found table.
type NotFound struct {
	Relation    relation.Kind
	Name        string
	Videos      string
	Occurrences int
}

// Open creates or connects to the export database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return retryOnBusy(ctx, func() error { return s.createSchema(ctx) })
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to recreate it)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

func pairTable(kind relation.Kind) string {
	return "video_" + string(kind)
}

// Write replaces every relation table and the not_found table with result.
func (s *Store) Write(ctx context.Context, runID string, result *relation.Result) error {
	if result == nil {
		return errors.New("write export: nil result")
	}
	return retryOnBusy(ctx, func() error { return s.write(ctx, runID, result) })
}

func (s *Store) write(ctx context.Context, runID string, result *relation.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM not_found"); err != nil {
		return fmt.Errorf("clear not_found: %w", err)
	}
	notFound, err := tx.PrepareContext(ctx,
		"INSERT INTO not_found (relation, name, videos, occurrences, rank) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare not_found insert: %w", err)
	}
	defer notFound.Close()

	for _, kind := range relation.Kinds {
		table := result.Table(kind)
		name := pairTable(kind)
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+name); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
		insert, err := tx.PrepareContext(ctx,
			fmt.Sprintf("INSERT INTO %s (video_id, %s_id) VALUES (?, ?)", name, kind))
		if err != nil {
			return fmt.Errorf("prepare %s insert: %w", name, err)
		}
		for _, pair := range table.Pairs {
			if _, err := insert.ExecContext(ctx, pair.PrimaryID, pair.ReferenceID); err != nil {
				_ = insert.Close()
				return fmt.Errorf("insert %s: %w", name, err)
			}
		}
		_ = insert.Close()

		for rank, entry := range relation.NewReport(table.Unresolved).Entries {
			if _, err := notFound.ExecContext(ctx, string(kind), entry.Name,
				strings.Join(entry.Codes, ","), entry.Count(), rank+1); err != nil {
				return fmt.Errorf("insert not_found: %w", err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO runs (run_id, created_at, records, pairs) VALUES (?, ?, ?, ?)",
		runID, time.Now().UTC().Format(time.RFC3339), result.Records, result.TotalPairs(),
	); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return tx.Commit()
}

// PairCount returns the number of rows stored for kind.
func (s *Store) PairCount(ctx context.Context, kind relation.Kind) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+pairTable(kind)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", pairTable(kind), err)
	}
	return count, nil
}

// NotFound lists unresolved names for kind in report order.
func (s *Store) NotFound(ctx context.Context, kind relation.Kind) ([]NotFound, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT relation, name, videos, occurrences FROM not_found WHERE relation = ? ORDER BY rank",
		string(kind))
	if err != nil {
		return nil, fmt.Errorf("query not_found: %w", err)
	}
	defer rows.Close()

	var out []NotFound
	for rows.Next() {
		var (
			nf  NotFound
			rel string
		)
		if err := rows.Scan(&rel, &nf.Name, &nf.Videos, &nf.Occurrences); err != nil {
			return nil, fmt.Errorf("scan not_found: %w", err)
		}
		nf.Relation = relation.Kind(rel)
		out = append(out, nf)
	}
	return out, rows.Err()
}

// Runs returns the number of recorded runs.
func (s *Store) Runs(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM runs").Scan(&count); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}
