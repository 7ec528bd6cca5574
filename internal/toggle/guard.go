package toggle

import "sync"

// inflightGuard serializes toggles per (entity, kind) key. A second toggle
// for a key that is still resolving is rejected, never queued - two opposite
// requests crossing on the wire would land in arbitrary order.
type inflightGuard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{keys: make(map[string]struct{})}
}

// tryAcquire marks key as in flight. Returns false if it already is.
func (g *inflightGuard) tryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.keys[key]; ok {
		return false
	}
	g.keys[key] = struct{}{}
	return true
}

// release clears the key. Must be called after a successful tryAcquire.
func (g *inflightGuard) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, key)
}
