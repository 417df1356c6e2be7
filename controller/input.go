package controller

import (
	"context"
	"fmt"

	"github.com/lightsnake/engine/rules"
)

// Intent is the directional meaning of an input event.
type Intent int

// Intents. IntentNone marks events that carry no direction.
const (
	IntentNone Intent = iota
	IntentUp
	IntentDown
	IntentLeft
	IntentRight
)

func (i Intent) String() string {
	switch i {
	case IntentUp:
		return "up"
	case IntentDown:
		return "down"
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	}
	return "none"
}

// Delta converts the intent into a heading. ok is false for IntentNone.
func (i Intent) Delta() (d rules.Delta, ok bool) {
	switch i {
	case IntentUp:
		return rules.Up, true
	case IntentDown:
		return rules.Down, true
	case IntentLeft:
		return rules.Left, true
	case IntentRight:
		return rules.Right, true
	}
	return rules.Delta{}, false
}

// Event is one input event from a player.
type Event struct {
	// Source identifies the player's device. It is opaque and stable.
	Source string
	Intent Intent
}

func (e Event) String() string {
	return fmt.Sprintf("%s:%s", e.Source, e.Intent)
}

// Source is a stream of input events. Next blocks until an event arrives and
// returns io.EOF once the stream has ended.
type Source interface {
	Next(ctx context.Context) (Event, error)
}

// KeyIntent maps a key-down event's key code (browser KeyboardEvent.code or
// key names) to an intent.
func KeyIntent(code string) Intent {
	switch code {
	case "ArrowUp", "KeyW", "w", "W":
		return IntentUp
	case "ArrowDown", "KeyS", "s", "S":
		return IntentDown
	case "ArrowLeft", "KeyA", "a", "A":
		return IntentLeft
	case "ArrowRight", "KeyD", "d", "D":
		return IntentRight
	}
	return IntentNone
}

// GamepadButtonIntent maps a button-down event on a standard gamepad to an
// intent. Buttons 12-15 are the d-pad, see
// https://w3c.github.io/gamepad/#remapping
func GamepadButtonIntent(index int) Intent {
	switch index {
	case 12:
		return IntentUp
	case 13:
		return IntentDown
	case 14:
		return IntentLeft
	case 15:
		return IntentRight
	}
	return IntentNone
}
