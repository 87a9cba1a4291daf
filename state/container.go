// Package state holds the single current value of each top-level entity
// and recomputes derived views. Containers are the only mutable shared
// resources of the SDK; every write is atomic from a reader's perspective.
package state

import (
	"fmt"
	"sync"
)

// Container is an observable value holder. Reading before the first Set is
// a programming error and fails loudly; "no data yet" must never leak into
// the UI as a zero value.
type Container[T any] struct {
	name string

	mu     sync.RWMutex
	val    T
	loaded bool
	subs   map[int]func(T)
	nextID int
}

// New returns an empty container. name appears in the panic message of
// MustGet.
func New[T any](name string) *Container[T] {
	return &Container[T]{name: name, subs: make(map[int]func(T))}
}

// Get returns the current value and whether one has been set.
func (c *Container[T]) Get() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.val, c.loaded
}

// MustGet returns the current value, panicking when the container was
// never initialized.
func (c *Container[T]) MustGet() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		panic(fmt.Sprintf("state: %s was not initialized", c.name))
	}
	return c.val
}

// Loaded reports whether a value has been set.
func (c *Container[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Set stores v and notifies subscribers in registration order, outside the
// lock.
func (c *Container[T]) Set(v T) {
	c.mu.Lock()
	c.val = v
	c.loaded = true
	subs := c.snapshotSubs()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Clear resets the container to its uninitialized state, e.g. on logout or
// session expiry. Subscribers are not notified; the next Set will be.
func (c *Container[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.val = zero
	c.loaded = false
}

// Subscribe registers fn for every subsequent Set. If a value is already
// present fn observes it immediately, before any concurrent Set can hand
// it a newer one. The replay runs under the container lock, so fn must not
// call back into the container. The returned func cancels the
// subscription.
func (c *Container[T]) Subscribe(fn func(T)) (cancel func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	if c.loaded {
		fn(c.val)
	}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Container[T]) snapshotSubs() []func(T) {
	out := make([]func(T), 0, len(c.subs))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.subs[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
