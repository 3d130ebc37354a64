// Package cache memoizes read results and drops them by tag after writes.
// Tags are the public paths a value feeds ("/", "/projects",
// "/property/<id>", ...), so a mutation invalidates exactly the views that
// can show its data.
package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrMiss is returned by a Remember fn when the looked-up record does not
// exist. Remember then yields the zero value and a nil error and stores
// nothing, so lookups of arbitrary keys cannot grow the store.
var ErrMiss = errors.New("cache: miss")

type entry struct {
	value   any
	tags    []string
	expires time.Time
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	byTag   map[string]map[string]struct{}
	group   singleflight.Group
	now     func() time.Time
	// gen increases on every invalidation; a computation started before an
	// invalidation must not store its (possibly stale) result.
	gen uint64
}

func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		byTag:   make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

// Remember returns the cached value for key or computes it with fn. A zero
// ttl keeps the value until invalidated. Errors are never cached, and
// concurrent callers for the same key share one computation.
func Remember[T any](ctx context.Context, s *Store, key string, tags []string, ttl time.Duration, fn func(context.Context) (T, error)) (T, error) {
	v, gen, ok := s.get(key)
	if ok {
		return v.(T), nil
	}
	// callers arriving after an invalidation must not join an older flight
	flight := key + "@" + strconv.FormatUint(gen, 10)
	ch := s.group.DoChan(flight, func() (any, error) {
		// detach from the first caller's cancellation; others share the result
		v, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.set(key, v, tags, ttl, gen)
		return v, nil
	})
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		if errors.Is(res.Err, ErrMiss) {
			var zero T
			return zero, nil
		}
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (s *Store) get(key string) (any, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, s.gen, false
	}
	if !e.expires.IsZero() && s.now().After(e.expires) {
		return nil, s.gen, false
	}
	return e.value, s.gen, true
}

func (s *Store) set(key string, v any, tags []string, ttl time.Duration, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.removeLocked(key)
	e := entry{value: v, tags: tags}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.entries[key] = e
	for _, t := range tags {
		keys, ok := s.byTag[t]
		if !ok {
			keys = make(map[string]struct{})
			s.byTag[t] = keys
		}
		keys[key] = struct{}{}
	}
}

// Invalidate drops every entry tagged with any of tags.
func (s *Store) Invalidate(tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	for _, t := range tags {
		for key := range s.byTag[t] {
			s.removeLocked(key)
		}
	}
}

// Len reports the number of cached entries, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) removeLocked(key string) {
	e, ok := s.entries[key]
	if !ok {
		return
	}
	delete(s.entries, key)
	for _, t := range e.tags {
		if keys, ok := s.byTag[t]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(s.byTag, t)
			}
		}
	}
}
