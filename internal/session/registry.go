// Package session keeps per-shopper state keyed by session id.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/constants"
)

type entry[V any] struct {
	lastSeen time.Time
	value    V
}

// Registry creates a value on first use of a session id and forgets it once
// the session has been idle for longer than ttl.
type Registry[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	create  func() V
	now     func() time.Time
	ttl     time.Duration
}

func NewRegistry[V any](create func() V, ttl time.Duration) *Registry[V] {
	return &Registry[V]{
		entries: map[string]*entry[V]{},
		create:  create,
		now:     time.Now,
		ttl:     ttl,
	}
}

func (r *Registry[V]) Get(id string) V {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		e = &entry[V]{value: r.create()}
		r.entries[id] = e
	}
	e.lastSeen = r.now()
	return e.value
}

func (r *Registry[V]) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

func (r *Registry[V]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops idle sessions and reports how many were dropped.
func (r *Registry[V]) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ttl <= 0 {
		return 0
	}
	deadline := r.now().Add(-r.ttl)
	dropped := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(deadline) {
			delete(r.entries, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps every interval until c is done.
func (r *Registry[V]) Run(c context.Context, interval time.Duration) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Registry Run").
		Str(constants.KEY_PROCESS, "sweeping sessions").
		Logger()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.Done():
			return
		case <-ticker.C:
			if dropped := r.Sweep(); dropped > 0 {
				logger.Debug().Int("dropped", dropped).Int("remaining", r.Len()).Msg("swept idle sessions")
			}
		}
	}
}

// SweepInterval checks four times per ttl, at most once a second.
func SweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return time.Minute
	}
	return max(ttl/4, time.Second)
}
