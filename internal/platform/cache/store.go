// Package cache holds read-through values for hot, rarely changing reads such
// as the season leaderboard and the game catalogue.
package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fortyozsucka/college-football-picks/internal/platform/resilience"
)

// ErrNilLoader is returned by GetOrLoad when it has nothing to fill a miss with.
var ErrNilLoader = errors.New("cache: loader is required")

type item struct {
	value    any
	deadline time.Time // zero means no expiry
}

func (it item) live(now time.Time) bool {
	return it.deadline.IsZero() || now.Before(it.deadline)
}

// Store is an in-process TTL cache. Concurrent loads of one key share a single
// loader call. A zero ttl keeps entries until they are deleted.
type Store struct {
	ttl   time.Duration
	clock func() time.Time

	mu    sync.RWMutex
	items map[string]item

	loads resilience.SingleFlight

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats is a point-in-time view of the store.
type Stats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:   ttl,
		clock: time.Now,
		items: make(map[string]item),
	}
}

// Get returns the live value for key and counts the lookup as a hit or miss.
// An expired entry is evicted on the way out.
func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	value, found := s.lookup(key)
	if !found {
		s.misses.Add(1)
		return nil, false
	}
	s.hits.Add(1)
	return value, true
}

func (s *Store) lookup(key string) (any, bool) {
	now := s.clock()

	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if it.live(now) {
		return it.value, true
	}

	s.mu.Lock()
	if current, ok := s.items[key]; ok && !current.live(now) {
		delete(s.items, key)
	}
	s.mu.Unlock()
	return nil, false
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	it := item{value: value}
	if s.ttl > 0 {
		it.deadline = s.clock().Add(s.ttl)
	}

	s.mu.Lock()
	s.items[key] = it
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix and reports how many went.
// An empty prefix is a no-op rather than a flush.
func (s *Store) DeletePrefix(_ context.Context, prefix string) int {
	if prefix == "" {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
			removed++
		}
	}
	return removed
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	entries := len(s.items)
	s.mu.RUnlock()

	return Stats{Entries: entries, Hits: s.hits.Load(), Misses: s.misses.Load()}
}

// GetOrLoad serves key from the store, calling load on a miss. Callers that
// miss together wait on one load. Load errors are returned and never cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	if load == nil {
		return nil, ErrNilLoader
	}
	if key == "" {
		return load(ctx)
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.loads.Do(key, func() (any, error) {
		// A load that finished while this caller queued has already filled it.
		if value, ok := s.lookup(key); ok {
			return value, nil
		}
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, value)
		return value, nil
	})
	return value, err
}
