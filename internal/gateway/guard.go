package gateway

import "sync"

// Guard tracks which actions have a gateway call in flight. A second
// request for a busy action is dropped, not queued.
type Guard struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewGuard() *Guard {
	return &Guard{inFlight: make(map[string]bool)}
}

// TryBegin marks action busy. It returns false if it already was.
func (g *Guard) TryBegin(action string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[action] {
		return false
	}
	g.inFlight[action] = true
	return true
}

// End clears the busy mark, whatever the outcome of the call.
func (g *Guard) End(action string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, action)
}

