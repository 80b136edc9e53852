package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleFlight_DoSharesLeaderResult(t *testing.T) {
	var g SingleFlight
	var runs atomic.Int32

	const callers = 16
	start := make(chan struct{})
	results := make(chan any, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := g.Do("leaderboard:2025", func() (any, error) {
				runs.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "board", nil
			})
			assert.NoError(t, err)
			results <- val
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	assert.EqualValues(t, 1, runs.Load())
	for val := range results {
		assert.Equal(t, "board", val)
	}
}

func TestSingleFlight_TryDoRejectsWhileHeld(t *testing.T) {
	var g SingleFlight
	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _, ran := g.TryDo(scoringKey, func() (any, error) {
			close(entered)
			<-release
			return nil, nil
		})
		assert.True(t, ran)
	}()

	<-entered
	_, _, ran := g.TryDo(scoringKey, func() (any, error) {
		t.Error("second caller must not run while the key is held")
		return nil, nil
	})
	assert.False(t, ran)

	// Other keys are independent.
	_, _, ran = g.TryDo("other", func() (any, error) { return nil, nil })
	assert.True(t, ran)

	close(release)
	<-done

	val, err, ran := g.TryDo(scoringKey, func() (any, error) { return "ok", errors.New("boom") })
	assert.True(t, ran)
	assert.Equal(t, "ok", val)
	assert.EqualError(t, err, "boom")
}

func TestSingleFlight_PanicReleasesKey(t *testing.T) {
	var g SingleFlight

	require.Panics(t, func() {
		g.TryDo(scoringKey, func() (any, error) { panic("settle blew up") })
	})

	_, _, ran := g.TryDo(scoringKey, func() (any, error) { return nil, nil })
	assert.True(t, ran, "a panicking run must not wedge the guard")
}

const scoringKey = "scoring:run"
