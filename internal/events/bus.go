// Package events provides a synchronous in-process publish/subscribe bus.
package events

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Handler receives the payload of an emitted event.
type Handler func(ctx context.Context, payload any) error

// Subscription is a handle for a registered handler
type Subscription struct {
	name    string
	handler Handler
}

// Name returns the event name the subscription listens to.
func (s *Subscription) Name() string {
	return s.name
}

// Bus dispatches events to the handlers registered for them.
// Handlers run synchronously on the emitting goroutine in registration order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]*Subscription
	closed   bool
	logger   *zap.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used for handler failures.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates an empty Bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		handlers: make(map[string][]*Subscription),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for name and returns its handle.
// It returns nil once the bus is closed.
func (b *Bus) Subscribe(name string, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || handler == nil {
		return nil
	}
	sub := &Subscription{name: name, handler: handler}
	b.handlers[name] = append(b.handlers[name], sub)
	return sub
}

// On registers handler for name and returns a function that unsubscribes it.
func (b *Bus) On(name string, handler Handler) func() {
	sub := b.Subscribe(name, handler)
	return func() { b.Off(name, sub) }
}

// Off removes a subscription. Unknown or nil subscriptions are ignored.
func (b *Bus) Off(name string, sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[name]
	for i, s := range subs {
		if s == sub {
			// copy so snapshots taken by in-flight emits are not disturbed
			next := make([]*Subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			if len(next) == 0 {
				delete(b.handlers, name)
			} else {
				b.handlers[name] = next
			}
			return
		}
	}
}

// Once registers handler to run for the next emission of name only.
func (b *Bus) Once(name string, handler Handler) {
	var sub *Subscription
	sub = b.Subscribe(name, func(ctx context.Context, payload any) error {
		b.Off(name, sub)
		return handler(ctx, payload)
	})
}

// Emit runs every handler registered for name at the time of the call.
// Handler errors and panics are logged and do not stop the remaining handlers.
func (b *Bus) Emit(ctx context.Context, name string, payload any) {
	b.mu.RLock()
	subs := b.handlers[name]
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := b.dispatch(ctx, sub, payload); err != nil {
			b.logger.Error("event handler failed",
				zap.String("event", name),
				zap.Error(err))
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, sub *Subscription, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return sub.handler(ctx, payload)
}

// HandlerCount returns the number of handlers registered for name.
func (b *Bus) HandlerCount(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[name])
}

// Close drops every subscription. Later registrations are ignored and Emit does nothing.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = make(map[string][]*Subscription)
}
