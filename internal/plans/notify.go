package plans

import "sync"

// ChangeKind says what happened to persisted plan state.
type ChangeKind string

const (
	ChangeCreated     ChangeKind = "created"
	ChangeRegenerated ChangeKind = "regenerated"
	ChangeActivated   ChangeKind = "activated"
	ChangeDeleted     ChangeKind = "deleted"
	ChangeCommitted   ChangeKind = "committed"
	ChangeCleared     ChangeKind = "cleared"
)

// Change is published after a mutation is persisted. Key is the storage key
// that was rewritten; listeners that only show the active plan can ignore
// collection changes.
type Change struct {
	Key    string     `json:"key"`
	PlanID string     `json:"planId,omitempty"`
	Kind   ChangeKind `json:"kind"`
}

// Notifier fans changes out to subscribers. Delivery is best effort: a
// subscriber must return quickly and reconcile from storage if it misses one.
type Notifier struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(Change)
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Change))}
}

// Subscribe registers fn and returns a function that removes it.
func (n *Notifier) Subscribe(fn func(Change)) (unsubscribe func()) {
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = fn
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

// Publish calls every subscriber with c.
func (n *Notifier) Publish(c Change) {
	n.mu.RLock()
	fns := make([]func(Change), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn(c)
	}
}

// Subscribers reports the number of registered listeners.
func (n *Notifier) Subscribers() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}
