package rules

import "sync"

// Arena guards the single State shared by the input router and the tick loop.
// Every read or write of the State happens inside Do.
type Arena struct {
	mu    sync.Mutex
	state *State
}

// NewArena wraps s. The caller must not touch s directly afterwards.
func NewArena(s *State) *Arena {
	return &Arena{state: s}
}

// Do runs fn with exclusive access to the state. fn must not block.
func (a *Arena) Do(fn func(*State)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	fn(a.state)
}
