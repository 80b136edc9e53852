package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClockedStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC)}
	store := NewStore(ttl)
	store.clock = clock.Now
	return store, clock
}

func TestStore_GetOrLoadSharesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "board", nil
	}

	const callers = 16
	results := make(chan any, callers)
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "leaderboard:season:2025", load)
			assert.NoError(t, err)
			results <- v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for v := range results {
		assert.Equal(t, "board", v)
	}
	assert.Equal(t, int32(1), calls.Load())

	_, err := store.GetOrLoad(context.Background(), "leaderboard:season:2025", load)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load(), "cached value served without another load")
}

func TestStore_GetOrLoadCachesValueNotError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	boom := errors.New("boom")

	var calls int
	_, err := store.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
		calls++
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	for range 2 {
		v, err := store.GetOrLoad(ctx, "k", func(context.Context) (any, error) {
			calls++
			return 7, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, 2, calls)
}

func TestStore_GetOrLoadValidation(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	_, err := store.GetOrLoad(context.Background(), "k", nil)
	require.ErrorIs(t, err, ErrNilLoader)

	var calls int
	for range 2 {
		_, err = store.GetOrLoad(context.Background(), "", func(context.Context) (any, error) {
			calls++
			return "uncached", nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls, "empty key bypasses the store")
}

func TestStore_DeletePrefixAndStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)
	store.Set(ctx, "leaderboard:season:2024", 1)
	store.Set(ctx, "leaderboard:season:2025", 2)
	store.Set(ctx, "game:season:2025", 3)

	_, ok := store.Get(ctx, "leaderboard:season:2025")
	require.True(t, ok)

	assert.Zero(t, store.DeletePrefix(ctx, ""))
	assert.Equal(t, 2, store.DeletePrefix(ctx, "leaderboard:"))

	_, ok = store.Get(ctx, "leaderboard:season:2024")
	assert.False(t, ok)
	assert.Equal(t, Stats{Entries: 1, Hits: 1, Misses: 1}, store.Stats())
}

func TestStore_EntriesExpireAfterTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, clock := newClockedStore(time.Minute)
	store.Set(ctx, "k", "v")

	clock.Advance(59 * time.Second)
	v, ok := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	clock.Advance(time.Second)
	_, ok = store.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, store.Stats().Entries, "expired entry is evicted on read")
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, clock := newClockedStore(0)
	store.Set(ctx, "k", "v")
	clock.Advance(365 * 24 * time.Hour)

	_, ok := store.Get(ctx, "k")
	assert.True(t, ok)

	store.Delete(ctx, "k")
	_, ok = store.Get(ctx, "k")
	assert.False(t, ok)
}
