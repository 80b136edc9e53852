package resilience

import "sync"

// SingleFlight coordinates callers that share a key. Do lets followers wait
// for and share the leader's result; TryDo turns them away instead, which is
// what a batch run guard needs.
type SingleFlight struct {
	mu       sync.Mutex
	inFlight map[string]*flight
}

type flight struct {
	done chan struct{}
	val  any
	err  error
}

// claim registers the caller as leader for key, or returns the flight already
// holding it.
func (g *SingleFlight) claim(key string) (f *flight, leader bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.inFlight[key]; ok {
		return existing, false
	}
	if g.inFlight == nil {
		g.inFlight = make(map[string]*flight)
	}
	f = &flight{done: make(chan struct{})}
	g.inFlight[key] = f
	return f, true
}

// lead runs fn and releases key even when fn panics.
func (g *SingleFlight) lead(key string, f *flight, fn func() (any, error)) {
	defer func() {
		g.mu.Lock()
		delete(g.inFlight, key)
		g.mu.Unlock()
		close(f.done)
	}()
	f.val, f.err = fn()
}

// Do runs fn once per key at a time. shared reports whether the result came
// from another caller's run.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (val any, err error, shared bool) {
	f, leader := g.claim(key)
	if !leader {
		<-f.done
		return f.val, f.err, true
	}
	g.lead(key, f, fn)
	return f.val, f.err, false
}

// TryDo runs fn only when nothing holds key. ran is false, without waiting,
// when another caller already does.
func (g *SingleFlight) TryDo(key string, fn func() (any, error)) (val any, err error, ran bool) {
	f, leader := g.claim(key)
	if !leader {
		return nil, nil, false
	}
	g.lead(key, f, fn)
	return f.val, f.err, true
}
