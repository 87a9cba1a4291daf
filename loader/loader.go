// Package loader drives asynchronous fetches through a
// loading → done | error lifecycle with bounded automatic retry,
// last-request-wins cancellation and exactly-once propagation of loaded
// values into state containers.
package loader

import (
	"context"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/soundbored/soundbored-go/internal/apierr"
)

// Phase is the lifecycle position of a Loader.
type Phase int

const (
	Idle Phase = iota
	Loading
	Done
	Failed
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Done:
		return "done"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is an observed loader state. Value is meaningful only in Done,
// Err only in Failed.
type Snapshot[T any] struct {
	Phase Phase
	Value T
	Err   error
}

// Loader runs one fetch at a time. Starting a new load supersedes and
// cancels any in-flight attempt; a superseded attempt's outcome is dropped
// so it can never overwrite a newer result.
type Loader[T any] struct {
	fetch    func(context.Context) (T, error)
	sink     func(T)
	attempts int
	initial  time.Duration

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	snap   Snapshot[T]
	subs   map[int]func(Snapshot[T])
	nextID int
}

// Option configures a Loader.
type Option[T any] func(*Loader[T])

// WithSink registers fn to receive the loaded value exactly once per
// successful fetch, before the state flips to Done. fn must not call back
// into the Loader.
func WithSink[T any](fn func(T)) Option[T] {
	return func(l *Loader[T]) { l.sink = fn }
}

// WithAttempts bounds the automatic retry of one load to n total tries.
func WithAttempts[T any](n int) Option[T] {
	return func(l *Loader[T]) {
		if n > 0 {
			l.attempts = n
		}
	}
}

// WithInitialBackoff overrides the first retry delay (mainly for tests).
func WithInitialBackoff[T any](d time.Duration) Option[T] {
	return func(l *Loader[T]) {
		if d > 0 {
			l.initial = d
		}
	}
}

// New constructs an idle Loader around fetch.
func New[T any](fetch func(context.Context) (T, error), opts ...Option[T]) *Loader[T] {
	l := &Loader[T]{
		fetch:    fetch,
		attempts: 5,
		initial:  200 * time.Millisecond,
		subs:     make(map[int]func(Snapshot[T])),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current snapshot.
func (l *Loader[T]) State() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Subscribe registers fn for every state transition. The returned func
// cancels the subscription. fn must not call back into the Loader.
func (l *Loader[T]) Subscribe(fn func(Snapshot[T])) (cancel func()) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// Load starts a fresh fetch, cancelling any in-flight attempt. The loader
// transitions to Loading immediately.
func (l *Loader[T]) Load(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	l.cancel = cancel
	l.snap = Snapshot[T]{Phase: Loading}
	subs := l.snapshotSubsLocked()
	snap := l.snap
	l.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}

	go l.run(ctx, gen)
}

// Retry re-enters Loading after a terminal error (or at any time); it is
// the manual recovery affordance.
func (l *Loader[T]) Retry(ctx context.Context) { l.Load(ctx) }

// Cancel aborts the in-flight attempt, if any, returning the loader to
// Idle. Used when the owning view is torn down.
func (l *Loader[T]) Cancel() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	// Bump the generation so a result that still races in is dropped.
	l.gen++

	if l.snap.Phase != Loading {
		l.mu.Unlock()
		return
	}
	l.snap = Snapshot[T]{Phase: Idle}
	snap := l.snap
	subs := l.snapshotSubsLocked()
	l.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (l *Loader[T]) run(ctx context.Context, gen uint64) {
	val, err := l.attempt(ctx)

	l.mu.Lock()
	if gen != l.gen {
		// Superseded by a newer load; this outcome must not surface.
		l.mu.Unlock()
		return
	}
	// The attempt is over; release the derived context.
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if err != nil {
		l.snap = Snapshot[T]{Phase: Failed, Err: err}
	} else {
		if l.sink != nil {
			l.sink(val)
		}
		l.snap = Snapshot[T]{Phase: Done, Value: val}
	}
	snap := l.snap
	subs := l.snapshotSubsLocked()
	l.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// attempt runs the fetch with bounded retry. Only retryable failures
// (server/transport) are tried again; everything else is terminal
// immediately.
func (l *Loader[T]) attempt(ctx context.Context) (T, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = l.initial
	exp.MaxInterval = 5 * time.Second
	exp.Reset()

	var val T
	var err error
	for i := 0; i < l.attempts; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return val, ctxErr
		}
		if i > 0 {
			select {
			case <-time.After(exp.NextBackOff()):
			case <-ctx.Done():
				return val, ctx.Err()
			}
		}
		val, err = l.fetch(ctx)
		if err == nil {
			return val, nil
		}
		if !apierr.Retryable(err) {
			return val, err
		}
	}
	return val, err
}

func (l *Loader[T]) snapshotSubsLocked() []func(Snapshot[T]) {
	out := make([]func(Snapshot[T]), 0, len(l.subs))
	for id := 0; id < l.nextID; id++ {
		if fn, ok := l.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
