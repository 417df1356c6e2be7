package lighthouse

import (
	"fmt"

	"github.com/lightsnake/engine/controller"
	"github.com/vmihailenco/msgpack/v5"
)

// InputEvent is a key or gamepad event as streamed by the server. Fields not
// needed to steer a snake are left out.
type InputEvent struct {
	Type    string          `msgpack:"type"`
	Source  interface{}     `msgpack:"source"`
	Code    string          `msgpack:"code"`
	Down    bool            `msgpack:"down"`
	Control *GamepadControl `msgpack:"control,omitempty"`
}

// GamepadControl is the button or axis that changed on a gamepad.
type GamepadControl struct {
	Type  string  `msgpack:"type"`
	Index int     `msgpack:"index"`
	Down  bool    `msgpack:"down"`
	Value float64 `msgpack:"value"`
}

// Event translates the input event into a controller event. Only key-down
// and button-down events carry an intent.
func (ie *InputEvent) Event() controller.Event {
	ev := controller.Event{Source: fmt.Sprint(ie.Source)}
	switch ie.Type {
	case "key":
		if ie.Down {
			ev.Intent = controller.KeyIntent(ie.Code)
		}
	case "gamepad":
		if c := ie.Control; c != nil && c.Type == "button" && c.Down {
			ev.Intent = controller.GamepadButtonIntent(c.Index)
		}
	}
	return ev
}

// decodeEvent reads a streamed payload. ok is false for payloads that are not
// input events, such as the empty acknowledgement of the STREAM request.
func decodeEvent(payload msgpack.RawMessage) (controller.Event, bool) {
	if len(payload) == 0 {
		return controller.Event{}, false
	}
	ie := &InputEvent{}
	if err := msgpack.Unmarshal(payload, ie); err != nil {
		return controller.Event{}, false
	}
	if ie.Source == nil || ie.Type == "" {
		return controller.Event{}, false
	}
	return ie.Event(), true
}
