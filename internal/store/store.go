// Package store is the sole owner of the persisted unified record.
//
// Every mutation reads the whole record, changes it in memory and writes the whole
// record back. There is no locking: concurrent writers race and the last write wins.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-readiness/internal/schemas"
	"github.com/jonathan/career-readiness/internal/storage"
	"github.com/jonathan/career-readiness/internal/types"
	"go.uber.org/zap"
)

// Storage keys
const (
	DataKey = "unifiedPlatformData"

	LegacyResumeKey   = "resumeData"
	LegacyBuilderKey  = "resumeBuilderData"
	LegacyTemplateKey = "resumeTemplate"
	LegacyColorKey    = "resumeColor"
)

var (
	// ErrInvalidFormat is returned when an imported file is not a valid record.
	ErrInvalidFormat = errors.New("invalid file format")

	// ErrInvalidRecord is returned when a mutation would persist a record that fails
	// the record schema. Nothing is written.
	ErrInvalidRecord = errors.New("invalid record")
)

// Store reads and writes the unified record through a key-value backend.
type Store struct {
	kv     storage.KV
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for recovered errors.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the generator for list entry ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// New creates a Store over kv.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// NewID returns a fresh entry id.
func (s *Store) NewID() string {
	return s.newID()
}

// GetData returns the persisted record, or a fresh default record when none is stored
// or the stored blob is unreadable. It never fails.
func (s *Store) GetData(ctx context.Context) *types.Data {
	raw, found, err := s.kv.Get(ctx, DataKey)
	if err != nil {
		s.logger.Warn("failed to read unified record, using defaults", zap.Error(err))
		return types.NewData()
	}
	if !found {
		return types.NewData()
	}

	data, err := decode([]byte(raw))
	if err != nil {
		s.logger.Warn("stored unified record is corrupt, using defaults", zap.Error(err))
		return types.NewData()
	}
	return data
}

// decode validates a serialized record against the schema and unmarshals it over
// normalized defaults.
func decode(raw []byte) (*types.Data, error) {
	if err := schemas.ValidatePlatformData(raw); err != nil {
		return nil, err
	}
	var data types.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal unified record: %w", err)
	}
	data.Normalize()
	return &data, nil
}

// SaveData overwrites the persisted record and stamps lastActivity.
func (s *Store) SaveData(ctx context.Context, data *types.Data) error {
	now := s.now()
	data.LastActivity = &now
	if data.Version == 0 {
		data.Version = types.CurrentVersion
	}
	return s.write(ctx, data)
}

func (s *Store) write(ctx context.Context, data *types.Data) error {
	data.Normalize()
	raw, err := encode(data)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, DataKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save unified record: %w", err)
	}
	return nil
}

// encode marshals a record and checks it against the schema that GetData enforces,
// so a stored blob always loads back.
func encode(data *types.Data) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal unified record: %w", err)
	}
	if err := schemas.ValidatePlatformData(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return raw, nil
}

// update applies fn to the current record and saves it when fn reports a change.
func (s *Store) update(ctx context.Context, fn func(d *types.Data) bool) error {
	data := s.GetData(ctx)
	if !fn(data) {
		return nil
	}
	return s.SaveData(ctx, data)
}

// ClearAll removes the unified record. Legacy keys are left untouched.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.kv.Delete(ctx, DataKey); err != nil {
		return fmt.Errorf("failed to clear unified record: %w", err)
	}
	s.logger.Info("cleared unified record")
	return nil
}
