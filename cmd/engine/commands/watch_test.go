package commands

import (
	"context"
	"math/rand"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lightsnake/engine/api"
	"github.com/lightsnake/engine/controller"
	"github.com/lightsnake/engine/rules"
	"github.com/stretchr/testify/require"
)

func TestReadFrames(t *testing.T) {
	arena := rules.NewArena(rules.NewState(rules.DefaultConfig(), rand.New(rand.NewSource(5))))
	hub := api.NewHub()
	srv := api.New("", arena, controller.NewRouter(arena), hub)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	c, _, err := websocket.DefaultDialer.Dial(socketURL(ts.URL), nil)
	require.NoError(t, err)
	defer c.Close()

	require.Eventually(t, func() bool { return hub.Viewers() == 1 }, 2*time.Second, 5*time.Millisecond)

	frames := make(chan *rules.Frame, 4)
	done := make(chan error, 1)
	go func() { done <- readFrames(c, frames) }()

	var want *rules.Frame
	arena.Do(func(s *rules.State) {
		s.Tick()
		want = s.Render()
	})
	require.NoError(t, hub.PutFrame(context.Background(), want))

	select {
	case got := <-frames:
		require.Equal(t, want, got)
		require.Equal(t, 1, got.Snakes)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")
	}

	hub.Close()
	require.NoError(t, <-done)
}
