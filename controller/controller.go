// Package controller routes player input to the shared arena. Every distinct
// input source gets its own snake, assigned in the order sources are first
// seen.
package controller

import (
	"context"
	"io"
	"sync"

	"github.com/lightsnake/engine/rules"
	log "github.com/sirupsen/logrus"
)

// Router maps input sources to roster slots and applies their heading changes.
type Router struct {
	arena *rules.Arena

	mu    sync.RWMutex
	slots map[string]int
}

// NewRouter will initialize a Router for the arena.
func NewRouter(arena *rules.Arena) *Router {
	return &Router{
		arena: arena,
		slots: map[string]int{},
	}
}

// assign returns the slot for source, allocating the next index if the source
// is new.
func (r *Router) assign(source string) (slot, players int, isNew bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[source]
	if !ok {
		slot = len(r.slots)
		r.slots[source] = slot
	}
	return slot, len(r.slots), !ok
}

// Apply handles one event: a new source grows the roster, a directional
// intent turns the source's snake. It returns the source's slot. Apply is safe
// for concurrent use; the slot is assigned while the arena is held so the
// roster always covers it.
func (r *Router) Apply(ev Event) int {
	d, turn := ev.Intent.Delta()
	observeEvent(ev.Intent)

	var (
		slot, players int
		isNew         bool
	)
	r.arena.Do(func(s *rules.State) {
		slot, players, isNew = r.assign(ev.Source)
		if isNew {
			s.EnsureSnakes(players)
		}
		if turn {
			s.Snake(slot).RotateHead(d)
		}
	})

	if isNew {
		setPlayers(players)
		log.WithFields(log.Fields{
			"Source":  ev.Source,
			"Slot":    slot,
			"Players": players,
		}).Info("player joined")
	}
	if turn {
		log.WithFields(log.Fields{
			"Slot":    slot,
			"Heading": d,
		}).Debug("rotating snake head")
	}
	return slot
}

// Slot returns the slot assigned to source, if any.
func (r *Router) Slot(source string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.slots[source]
	return slot, ok
}

// Players returns a copy of the source to slot mapping.
func (r *Router) Players() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make(map[string]int, len(r.slots))
	for k, v := range r.slots {
		players[k] = v
	}
	return players
}

// Run applies events from src until it ends. A source that ends with io.EOF
// is a clean stop; any other error is returned.
func (r *Router) Run(ctx context.Context, src Source) error {
	for {
		ev, err := src.Next(ctx)
		if err == io.EOF {
			log.Info("input stream ended")
			return nil
		}
		if err != nil {
			return err
		}
		r.Apply(ev)
	}
}
