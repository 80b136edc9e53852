package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerProbing
)

func (s BreakerState) String() string {
	switch s {
	case BreakerOpen:
		return "open"
	case BreakerProbing:
		return "probing"
	default:
		return "closed"
	}
}

type BreakerOptions struct {
	// FailureThreshold consecutive failures open the breaker.
	FailureThreshold int
	// Cooldown is how long an open breaker rejects calls before letting a
	// single probe through.
	Cooldown time.Duration
}

func DefaultBreakerOptions() BreakerOptions {
	return BreakerOptions{FailureThreshold: 3, Cooldown: 10 * time.Second}
}

// Breaker short-circuits calls to a dependency that keeps failing. After the
// cooldown exactly one probe is let through; its outcome closes or reopens
// the breaker.
type Breaker struct {
	opts BreakerOptions
	now  func() time.Time

	mu       sync.Mutex
	failures int
	openedAt time.Time
	open     bool
	probing  bool
}

func NewBreaker(opts BreakerOptions) *Breaker {
	if opts.FailureThreshold < 1 {
		opts.FailureThreshold = 1
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultBreakerOptions().Cooldown
	}
	return &Breaker{opts: opts, now: time.Now}
}

// Do runs fn unless the breaker is open. A call abandoned because the caller
// cancelled says nothing about the dependency and is not counted.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	probe, err := b.admit()
	if err != nil {
		return err
	}

	err = fn(ctx)
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		b.abandon(probe)
		return err
	}
	b.settle(probe, err == nil)
	return err
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case !b.open:
		return BreakerClosed
	case b.probing || b.now().Sub(b.openedAt) >= b.opts.Cooldown:
		return BreakerProbing
	default:
		return BreakerOpen
	}
}

func (b *Breaker) admit() (probe bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return false, nil
	}
	if b.probing || b.now().Sub(b.openedAt) < b.opts.Cooldown {
		return false, ErrCircuitOpen
	}
	b.probing = true
	return true, nil
}

func (b *Breaker) abandon(probe bool) {
	if !probe {
		return
	}
	b.mu.Lock()
	b.probing = false
	b.mu.Unlock()
}

func (b *Breaker) settle(probe, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if probe {
		b.probing = false
	}
	if ok {
		b.failures = 0
		b.open = false
		return
	}

	b.failures++
	if probe || b.failures >= b.opts.FailureThreshold {
		b.open = true
		b.openedAt = b.now()
	}
}
