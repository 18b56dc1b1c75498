package storage

import (
	"context"
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLite stores blobs in a single kv_store table.
type SQLite struct {
	conn *sql.DB
}

// NewSQLite opens (or creates) the database at dsn and ensures the table exists.
// Use "file::memory:?cache=shared" for an in-memory database.
func NewSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	if dsn == "" {
		return nil, &Error{Op: "open", Message: "sqlite storage requires a database path"}
	}
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &Error{Op: "open", Key: dsn, Message: "failed to open db", Cause: err}
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, &Error{Op: "open", Key: dsn, Message: "failed to ping db", Cause: err}
	}
	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, &Error{Op: "open", Key: dsn, Message: "failed to create table", Cause: err}
	}
	return &SQLite{conn: conn}, nil
}

// Get returns the value stored under key.
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey("get", key); err != nil {
		return "", false, err
	}
	var value string
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &Error{Op: "get", Key: key, Message: "query failed", Cause: err}
	}
	return value, true, nil
}

// Set upserts the value stored under key.
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	if err := validateKey("set", key); err != nil {
		return err
	}
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return &Error{Op: "set", Key: key, Message: "upsert failed", Cause: err}
	}
	return nil
}

// Delete removes key.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if err := validateKey("delete", key); err != nil {
		return err
	}
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return &Error{Op: "delete", Key: key, Message: "delete failed", Cause: err}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}
