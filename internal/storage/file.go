package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

const fileExt = ".json"

// File stores each key as <dir>/<key>.json. Writes go through a temp file and rename.
type File struct {
	dir string
}

// NewFile creates a file backend rooted at dir, creating the directory if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, &Error{Op: "open", Message: "file storage requires a directory path"}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &Error{Op: "open", Key: dir, Message: "failed to create data directory", Cause: err}
	}
	return &File{dir: dir}, nil
}

// Dir returns the data directory.
func (f *File) Dir() string {
	return f.dir
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+fileExt)
}

// Get reads the value stored under key.
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	if err := validateKey("get", key); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &Error{Op: "get", Key: key, Message: "failed to read file", Cause: err}
	}
	return string(data), true, nil
}

// Set replaces the value stored under key.
func (f *File) Set(_ context.Context, key, value string) error {
	if err := validateKey("set", key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return &Error{Op: "set", Key: key, Message: "failed to create temp file", Cause: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return &Error{Op: "set", Key: key, Message: "failed to write temp file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &Error{Op: "set", Key: key, Message: "failed to close temp file", Cause: err}
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		return &Error{Op: "set", Key: key, Message: "failed to replace file", Cause: err}
	}
	return nil
}

// Delete removes the file for key. A missing file is not an error.
func (f *File) Delete(_ context.Context, key string) error {
	if err := validateKey("delete", key); err != nil {
		return err
	}
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &Error{Op: "delete", Key: key, Message: "failed to remove file", Cause: err}
	}
	return nil
}

// Close is a no-op.
func (f *File) Close() error {
	return nil
}
