package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"testing"

	"github.com/lightsnake/engine/rules"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	events []Event
	err    error
}

func (s *sliceSource) Next(ctx context.Context) (Event, error) {
	if len(s.events) == 0 {
		if s.err != nil {
			return Event{}, s.err
		}
		return Event{}, io.EOF
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func newArena(snakes int) *rules.Arena {
	cfg := rules.DefaultConfig()
	cfg.InitialSnakes = snakes
	return rules.NewArena(rules.NewState(cfg, rand.New(rand.NewSource(1))))
}

func rosterLen(arena *rules.Arena) int {
	var n int
	arena.Do(func(s *rules.State) { n = s.Len() })
	return n
}

func heading(arena *rules.Arena, slot int) rules.Delta {
	var d rules.Delta
	arena.Do(func(s *rules.State) { d = s.Snake(slot).Heading() })
	return d
}

func TestRouterAssignsSlotsInOrder(t *testing.T) {
	arena := newArena(0)
	r := NewRouter(arena)

	require.Equal(t, 0, r.Apply(Event{Source: "a", Intent: IntentUp}))
	require.Equal(t, 1, rosterLen(arena))

	require.Equal(t, 1, r.Apply(Event{Source: "b", Intent: IntentLeft}))
	require.Equal(t, 2, rosterLen(arena))

	require.Equal(t, 2, r.Apply(Event{Source: "c", Intent: IntentDown}))
	require.Equal(t, 3, rosterLen(arena))

	// seen again
	require.Equal(t, 1, r.Apply(Event{Source: "b", Intent: IntentRight}))
	require.Equal(t, 3, rosterLen(arena))

	require.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2}, r.Players())
	require.Equal(t, rules.Up, heading(arena, 0))
	require.Equal(t, rules.Right, heading(arena, 1))
	require.Equal(t, rules.Down, heading(arena, 2))
}

func TestRouterReusesInitialSnake(t *testing.T) {
	arena := newArena(1)
	r := NewRouter(arena)

	require.Equal(t, 0, r.Apply(Event{Source: "first", Intent: IntentLeft}))
	require.Equal(t, 1, rosterLen(arena))
	require.Equal(t, rules.Left, heading(arena, 0))
}

func TestRouterIgnoresEventsWithoutDirection(t *testing.T) {
	arena := newArena(0)
	r := NewRouter(arena)

	r.Apply(Event{Source: "a", Intent: IntentRight})
	before := heading(arena, 0)

	r.Apply(Event{Source: "a", Intent: IntentNone})
	require.Equal(t, before, heading(arena, 0))

	// an undirected event still registers a new player
	require.Equal(t, 1, r.Apply(Event{Source: "b"}))
	require.Equal(t, 2, rosterLen(arena))
	slot, ok := r.Slot("b")
	require.True(t, ok)
	require.Equal(t, 1, slot)

	_, ok = r.Slot("nobody")
	require.False(t, ok)
}

func TestRouterRun(t *testing.T) {
	arena := newArena(0)
	r := NewRouter(arena)
	src := &sliceSource{events: []Event{
		{Source: "pad-1", Intent: IntentUp},
		{Source: "pad-2", Intent: IntentDown},
		{Source: "pad-1", Intent: IntentLeft},
	}}

	err := r.Run(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 2, rosterLen(arena))
	require.Equal(t, rules.Left, heading(arena, 0))
	require.Equal(t, rules.Down, heading(arena, 1))
}

func TestRouterRunReturnsSourceError(t *testing.T) {
	r := NewRouter(newArena(0))
	boom := errors.New("connection reset")
	src := &sliceSource{
		events: []Event{{Source: "a", Intent: IntentUp}},
		err:    boom,
	}

	err := r.Run(context.Background(), src)
	require.Equal(t, boom, err)
}

func TestKeyIntent(t *testing.T) {
	tests := map[string]Intent{
		"ArrowUp":    IntentUp,
		"ArrowDown":  IntentDown,
		"ArrowLeft":  IntentLeft,
		"ArrowRight": IntentRight,
		"KeyW":       IntentUp,
		"a":          IntentLeft,
		"Enter":      IntentNone,
		"":           IntentNone,
	}
	for code, want := range tests {
		require.Equal(t, want, KeyIntent(code), code)
	}
}

func TestGamepadButtonIntent(t *testing.T) {
	require.Equal(t, IntentUp, GamepadButtonIntent(12))
	require.Equal(t, IntentDown, GamepadButtonIntent(13))
	require.Equal(t, IntentLeft, GamepadButtonIntent(14))
	require.Equal(t, IntentRight, GamepadButtonIntent(15))
	require.Equal(t, IntentNone, GamepadButtonIntent(0))
}

func TestIntentDelta(t *testing.T) {
	d, ok := IntentRight.Delta()
	require.True(t, ok)
	require.Equal(t, rules.Right, d)

	_, ok = IntentNone.Delta()
	require.False(t, ok)
}

func TestRouterConcurrentApply(t *testing.T) {
	arena := newArena(0)
	r := NewRouter(arena)

	const workers, sources = 16, 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < sources; i++ {
				src := fmt.Sprintf("pad-%d", (i+w)%sources)
				r.Apply(Event{Source: src, Intent: IntentLeft})
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, sources, rosterLen(arena))
	players := r.Players()
	require.Len(t, players, sources)

	seen := map[int]bool{}
	for src, slot := range players {
		require.False(t, seen[slot], "slot %d assigned twice (%s)", slot, src)
		seen[slot] = true
		require.Equal(t, rules.Left, heading(arena, slot))
	}
}
