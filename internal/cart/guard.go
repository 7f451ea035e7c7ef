package cart

import "sync"

// busyGuard tracks item ids with a mutation in flight. It is the only
// concurrency guard in the system; everything else is sequential.
type busyGuard struct {
	mu   *sync.Mutex
	busy map[string]struct{}
}

func newBusyGuard() busyGuard {
	return busyGuard{mu: &sync.Mutex{}, busy: make(map[string]struct{})}
}

func (g busyGuard) acquire(itemID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, inFlight := g.busy[itemID]; inFlight {
		return false
	}
	g.busy[itemID] = struct{}{}
	return true
}

func (g busyGuard) release(itemID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, itemID)
}
