package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/bigrams/pkg/bigram"
	"github.com/cognicore/bigrams/pkg/bigram/internalerr"
	"github.com/cognicore/bigrams/pkg/bigram/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// WAL journal
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// run_pairs cascades on runs
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	created_at TEXT NOT NULL,
	options TEXT NOT NULL,
	total INTEGER NOT NULL,
	uniq INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_pairs (
	run_id TEXT NOT NULL,
	pos INTEGER NOT NULL,
	prev TEXT NOT NULL,
	curr TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(run_id, pos),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// SaveRun writes the run and its ranked pairs in one transaction,
// replacing any run with the same ID.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("%w: run without id", internalerr.ErrInvalidInput)
	}
	opts, err := json.Marshal(r.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, r.ID); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, created_at, options, total, uniq) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Source, r.CreatedAt.UTC().Format(time.RFC3339Nano), string(opts), r.Total, r.Unique)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_pairs (run_id, pos, prev, curr, count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, e := range r.Pairs {
		if _, err := stmt.ExecContext(ctx, r.ID, i, e.Pair.Prev, e.Pair.Curr, e.Count); err != nil {
			return fmt.Errorf("insert pair: %w", err)
		}
	}

	return tx.Commit()
}

// GetRun loads a run with its pairs in rank order.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, created_at, options, total, uniq FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT prev, curr, count FROM run_pairs WHERE run_id = ? ORDER BY pos`, id)
	if err != nil {
		return store.Run{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var e bigram.Entry
		if err := rows.Scan(&e.Pair.Prev, &e.Pair.Curr, &e.Count); err != nil {
			return store.Run{}, err
		}
		r.Pairs = append(r.Pairs, e)
	}
	return r, rows.Err()
}

// ListRuns returns run headers, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, created_at, options, total, uniq FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r         store.Run
		createdAt string
		opts      string
	)
	if err := sc.Scan(&r.ID, &r.Source, &createdAt, &opts, &r.Total, &r.Unique); err != nil {
		return store.Run{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return store.Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	r.CreatedAt = t
	if err := json.Unmarshal([]byte(opts), &r.Options); err != nil {
		return store.Run{}, fmt.Errorf("decode options: %w", err)
	}
	return r, nil
}
