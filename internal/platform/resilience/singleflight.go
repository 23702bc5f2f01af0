package resilience

import "sync"

// SingleFlight collapses concurrent calls that share a key into a single
// execution. Followers block until the leader finishes and receive its
// result. The zero value is ready to use.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightResult
}

type flightResult struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key at a time. The boolean reports whether the result
// came from another caller's execution.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flightResult)
	}
	if r, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		<-r.done
		return r.val, r.err, true
	}
	r := &flightResult{done: make(chan struct{})}
	g.inflight[key] = r
	g.mu.Unlock()

	r.val, r.err = fn()
	close(r.done)

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return r.val, r.err, false
}
