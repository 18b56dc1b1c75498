// Package automation wires cross-module rules to the event bus: readiness
// recalculation, resume suggestions, job re-scoring and activity tracking.
package automation

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/career-readiness/internal/events"
	"github.com/jonathan/career-readiness/internal/store"
	"go.uber.org/zap"
)

// Action is the work a rule performs when its trigger fires.
type Action func(ctx context.Context, e *Engine, payload any) error

// Rule binds an action to an event name. A Trigger of events.Wildcard fires on every known event.
type Rule struct {
	ID          string `json:"id"`
	Trigger     string `json:"trigger"`
	Description string `json:"description"`
	action      Action
}

// Engine subscribes the automation rules to a bus.
type Engine struct {
	bus    *events.Bus
	store  *store.Store
	logger *zap.Logger
	rules  []Rule

	mu     sync.Mutex
	unsubs []func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for rule failures.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine with the default rule set. Call Start to subscribe it.
func New(bus *events.Bus, st *store.Store, opts ...Option) *Engine {
	e := &Engine{
		bus:    bus,
		store:  st,
		logger: zap.NewNop(),
		rules:  defaultRules(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start subscribes every rule to its trigger. Calling Start again is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.unsubs != nil {
		return
	}
	e.unsubs = []func(){}
	for _, rule := range e.rules {
		triggers := []string{rule.Trigger}
		if rule.Trigger == events.Wildcard {
			triggers = events.Known()
		}
		handler := e.handler(rule)
		for _, trigger := range triggers {
			e.unsubs = append(e.unsubs, e.bus.On(trigger, handler))
		}
	}
	e.logger.Debug("automation engine started", zap.Int("rules", len(e.rules)))
}

// Shutdown unsubscribes every rule. The engine may be started again afterwards.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, unsub := range e.unsubs {
		unsub()
	}
	e.unsubs = nil
}

// Rules lists the configured rules.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Trigger runs the rule with the given id without an event payload.
// Returns false if no rule has that id.
func (e *Engine) Trigger(ctx context.Context, id string) bool {
	for _, rule := range e.rules {
		if rule.ID == id {
			e.run(ctx, rule, nil)
			return true
		}
	}
	return false
}

func (e *Engine) handler(rule Rule) events.Handler {
	return func(ctx context.Context, payload any) error {
		e.run(ctx, rule, payload)
		return nil
	}
}

// run executes a rule, logging its error or panic so siblings are unaffected.
func (e *Engine) run(ctx context.Context, rule Rule, payload any) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("rule panic: %v", r)
			}
		}()
		return rule.action(ctx, e, payload)
	}()
	if err != nil {
		e.logger.Error("automation rule failed",
			zap.String("rule", rule.ID),
			zap.String("trigger", rule.Trigger),
			zap.Error(err))
	}
}
