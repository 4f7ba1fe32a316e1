// Package sqlite wraps a single SQLite database file behind the minimal
// surface the REST layer needs: open-or-create, execute, query, and
// startup DDL for exposed tables.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB is a handle to one SQLite database file.
//
// SQLite allows a single writer at a time, so the underlying pool is
// deliberately sized to one connection. That keeps every statement
// serialized process-wide without an ad-hoc global lock; busy_timeout
// covers contention from other processes on the same file.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens the database at path, creating the file if it does not exist.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// One connection: SQLite's own concurrency limit, made explicit.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db, path: path}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Path returns the filesystem path the database was opened with.
func (d *DB) Path() string {
	return d.path
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Exec runs a statement and returns the number of rows affected.
func (d *DB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Query runs a query and returns the resulting rows.
// Callers are responsible for closing the returned rows.
func (d *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.db.QueryContext(ctx, query, args...)
}

// CreateTable issues CREATE TABLE IF NOT EXISTS for the given table name
// and column DDL, e.g. "id INTEGER PRIMARY KEY, name TEXT". The table name
// is checked against the identifier allow-list; the column DDL is trusted
// configuration, not request input, and is passed through as-is.
func (d *DB) CreateTable(ctx context.Context, name, columns string) error {
	if !ValidIdent(name) {
		return fmt.Errorf("invalid table name: %q", name)
	}
	if _, err := d.db.ExecContext(ctx, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", name, columns)); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}
	return nil
}
