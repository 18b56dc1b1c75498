// Package workspace assembles the store, event bus and automation engine and exposes
// the user-facing operations. Each mutation persists through the store and then
// emits the matching event so automation rules can react.
package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/career-readiness/internal/automation"
	"github.com/jonathan/career-readiness/internal/events"
	"github.com/jonathan/career-readiness/internal/storage"
	"github.com/jonathan/career-readiness/internal/store"
	"go.uber.org/zap"
)

// ErrNotFound is returned when an id does not name a stored or catalog entry.
var ErrNotFound = errors.New("not found")

// Workspace is an initialized store with its bus and running automation engine.
type Workspace struct {
	Store  *store.Store
	Bus    *events.Bus
	Engine *automation.Engine

	kv     storage.KV
	logger *zap.Logger
}

// Open opens the configured backend, migrates the stored record and starts automation.
func Open(ctx context.Context, cfg storage.Config, logger *zap.Logger, opts ...store.Option) (*Workspace, error) {
	kv, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ws, err := New(ctx, kv, logger, opts...)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return ws, nil
}

// New builds a workspace over an already opened backend. The workspace owns kv afterwards.
func New(ctx context.Context, kv storage.KV, logger *zap.Logger, opts ...store.Option) (*Workspace, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	st := store.New(kv, append([]store.Option{store.WithLogger(logger.Named("store"))}, opts...)...)
	migrated, err := st.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	if migrated {
		logger.Info("migrated legacy data to unified store")
	}

	bus := events.New(events.WithLogger(logger.Named("events")))
	engine := automation.New(bus, st, automation.WithLogger(logger.Named("automation")))
	engine.Start()

	return &Workspace{
		Store:  st,
		Bus:    bus,
		Engine: engine,
		kv:     kv,
		logger: logger,
	}, nil
}

// Close stops automation, drops subscriptions and closes the backend.
func (w *Workspace) Close() error {
	w.Engine.Shutdown()
	w.Bus.Close()
	return w.kv.Close()
}
