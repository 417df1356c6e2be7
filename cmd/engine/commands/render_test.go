package commands

import (
	"context"
	"io"
	"testing"

	"github.com/lightsnake/engine/controller"
	"github.com/lightsnake/engine/rules"
	termbox "github.com/nsf/termbox-go"
	"github.com/stretchr/testify/require"
)

func TestColor256(t *testing.T) {
	require.Equal(t, termbox.Attribute(16+1), color256(rules.Black))
	require.Equal(t, termbox.Attribute(231+1), color256(rules.White))
	require.Equal(t, termbox.Attribute(196+1), color256(rules.Red))
	require.Equal(t, termbox.Attribute(46+1), color256(rules.Green))
	require.Equal(t, termbox.Attribute(21+1), color256(rules.Blue))
}

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		ev   termbox.Event
		want controller.Event
		ok   bool
		quit bool
	}{
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowUp}, controller.Event{Source: arrowsSource, Intent: controller.IntentUp}, true, false},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowRight}, controller.Event{Source: arrowsSource, Intent: controller.IntentRight}, true, false},
		{termbox.Event{Type: termbox.EventKey, Ch: 'a'}, controller.Event{Source: wasdSource, Intent: controller.IntentLeft}, true, false},
		{termbox.Event{Type: termbox.EventKey, Ch: 'S'}, controller.Event{Source: wasdSource, Intent: controller.IntentDown}, true, false},
		{termbox.Event{Type: termbox.EventKey, Ch: 'x'}, controller.Event{}, false, false},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}, controller.Event{}, false, true},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlC}, controller.Event{}, false, true},
		{termbox.Event{Type: termbox.EventResize}, controller.Event{}, false, false},
	}

	for _, tc := range tests {
		e, ok, quit := keyEvent(tc.ev)
		require.Equal(t, tc.want, e)
		require.Equal(t, tc.ok, ok)
		require.Equal(t, tc.quit, quit)
	}
}

func TestKeyboard_Next(t *testing.T) {
	events := make(chan termbox.Event, 3)
	events <- termbox.Event{Type: termbox.EventResize}
	events <- termbox.Event{Type: termbox.EventKey, Ch: 'w'}
	events <- termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}

	quit := false
	k := &keyboard{events: events, quit: func() { quit = true }}

	ev, err := k.Next(context.Background())
	require.NoError(t, err)
	require.Equal(t, controller.Event{Source: wasdSource, Intent: controller.IntentUp}, ev)

	_, err = k.Next(context.Background())
	require.Equal(t, io.EOF, err)
	require.True(t, quit)
}

func TestSocketURL(t *testing.T) {
	require.Equal(t, "ws://localhost:3005/socket", socketURL("http://localhost:3005"))
	require.Equal(t, "wss://snake.example.com/socket", socketURL("https://snake.example.com"))
	require.Equal(t, "ws://localhost:3005/socket", socketURL("localhost:3005"))
}
