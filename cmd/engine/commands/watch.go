package commands

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/lightsnake/engine/api"
	"github.com/lightsnake/engine/rules"
	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "shows a running arena in the terminal",
	RunE: func(*cobra.Command, []string) error {
		return watch()
	},
}

func socketURL(addr string) string {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/socket"}
	switch {
	case strings.HasPrefix(addr, "https://"):
		u.Scheme, u.Host = "wss", strings.TrimPrefix(addr, "https://")
	case strings.HasPrefix(addr, "http://"):
		u.Host = strings.TrimPrefix(addr, "http://")
	}
	return u.String()
}

// readFrames decodes frames from the socket until it closes.
func readFrames(c *websocket.Conn, frames chan<- *rules.Frame) error {
	defer close(frames)

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return errors.Wrap(err, "read")
		}
		if mt != websocket.TextMessage {
			continue
		}

		msg := &api.FrameMessage{}
		if err := json.Unmarshal(message, msg); err != nil {
			return errors.Wrap(err, "unmarshal frame")
		}
		frames <- &rules.Frame{
			Width:  msg.Width,
			Height: msg.Height,
			Turn:   msg.Turn,
			Snakes: msg.Snakes,
			Pixels: msg.Pixels,
		}
	}
}

func watch() error {
	u := socketURL(apiAddr)
	log.WithField("url", u).Info("connecting to arena")

	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return errors.Wrap(err, "dial")
	}
	defer c.Close()

	if err = termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()
	defer termbox.Interrupt()
	termbox.SetOutputMode(termbox.Output256)

	frames := make(chan *rules.Frame, 1)
	readErr := make(chan error, 1)
	go func() { readErr <- readFrames(c, frames) }()

	eventQueue := setupEventQueue()

	for {
		select {
		case ev := <-eventQueue:
			if _, _, quit := keyEvent(ev); quit {
				return nil
			}
		case f, ok := <-frames:
			if !ok {
				return <-readErr
			}
			if err := render(f); err != nil {
				return err
			}
		}
	}
}
