// Package storage provides key-value backends that hold serialized text blobs under logical keys.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Drivers
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// KV is a string blob store. A missing key is not an error: Get reports found=false.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Error represents a failed backend operation.
type Error struct {
	Op      string
	Key     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage %s %q: %s: %v", e.Op, e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("storage %s %q: %s", e.Op, e.Key, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Config selects and configures a backend.
type Config struct {
	Driver string
	// Path is the directory for the file driver and the database file for sqlite
	Path string
	// DSN is the PostgreSQL connection URL
	DSN string
}

// Open constructs the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (KV, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile, "":
		return NewFile(cfg.Path)
	case DriverSQLite:
		return NewSQLite(ctx, cfg.Path)
	case DriverPostgres:
		return NewPostgres(ctx, cfg.DSN)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
}

func validateKey(op, key string) error {
	if strings.TrimSpace(key) == "" {
		return &Error{Op: op, Key: key, Message: "empty key"}
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return &Error{Op: op, Key: key, Message: "key must not contain path separators"}
	}
	return nil
}
