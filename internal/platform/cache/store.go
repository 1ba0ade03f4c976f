// Package cache is the in-process read-through cache behind the dimension repositories.
package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value   any
	expires time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// Store is a TTL map with single-flight loading. A ttl of zero keeps entries until they
// are invalidated.
//
// Every invalidation bumps a generation. Loads that started under an older generation
// still answer their callers but are not stored, so a list read concurrently with a match
// upsert cannot put pre-upsert data back into the cache.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu         sync.RWMutex
	entries    map[string]entry
	generation uint64

	flight singleflight.Group
}

func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, now: time.Now, entries: make(map[string]entry)}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		if cur, still := s.entries[key]; still && cur.expired(s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	s.mu.Lock()
	s.put(key, value)
	s.mu.Unlock()
}

func (s *Store) put(key string, value any) {
	e := entry{value: value}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.entries[key] = e
}

func (s *Store) Delete(_ context.Context, key string) {
	s.invalidate(func(k string) bool { return k == key })
}

// DeletePrefix drops every key under prefix, e.g. "dimension:" after a match write.
func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	s.invalidate(func(k string) bool { return strings.HasPrefix(k, prefix) })
}

func (s *Store) invalidate(match func(key string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	for key := range s.entries {
		if match(key) {
			delete(s.entries, key)
		}
	}
}

// Len counts stored entries, including expired ones not yet read.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key, or runs loader once for all concurrent
// callers and caches its result. Errors are returned to every waiting caller and never cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, errors.New("cache: nil loader")
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	// Callers arriving after an invalidation join a fresh flight rather than the stale one.
	// Waiters share one loader, so it must not inherit the first caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	value, err, _ := s.flight.Do(key+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		loaded, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if s.generation == gen {
			s.put(key, loaded)
		}
		s.mu.Unlock()
		return loaded, nil
	})
	return value, err
}
