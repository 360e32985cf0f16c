package model

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"codeberg.org/snonux/mediakit/internal/processor"
)

// State tracks the lifecycle of a lazily constructed resource.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Lazy holds a resource of type T that is constructed at most once, on
// first Get. Concurrent first calls block until construction finishes.
// A failed construction is not retried: every later Get returns the same
// initialization error, and callers that need a retry must build a new
// processor instance.
type Lazy[T any] struct {
	load  func(context.Context) (T, error)
	once  sync.Once
	state atomic.Int32
	value T
	err   error
}

// NewLazy wraps a load function. The function is not called until the
// first Get.
func NewLazy[T any](load func(context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{load: load}
}

// Get returns the resource, constructing it on first call. The mutual
// exclusion guards only the construction; steady-state reads after the
// resource is ready are lock-free.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	l.once.Do(func() {
		l.state.Store(int32(StateInitializing))
		value, err := l.load(ctx)
		if err != nil {
			l.err = fmt.Errorf("%w: %v", processor.ErrInitialization, err)
			l.state.Store(int32(StateFailed))
			return
		}
		l.value = value
		l.state.Store(int32(StateReady))
	})
	if l.err != nil {
		var zero T
		return zero, l.err
	}
	return l.value, nil
}

// State returns the current lifecycle state.
func (l *Lazy[T]) State() State {
	return State(l.state.Load())
}

// Close releases the resource if it was constructed and implements
// io.Closer. Safe to call regardless of state.
func (l *Lazy[T]) Close() error {
	if l.State() != StateReady {
		return nil
	}
	if c, ok := any(l.value).(io.Closer); ok {
		return c.Close()
	}
	return nil
}
