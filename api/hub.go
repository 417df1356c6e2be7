package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lightsnake/engine/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// FrameMessage is what viewers of /socket receive for every frame.
type FrameMessage struct {
	Turn   int64         `json:"turn"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Snakes int           `json:"snakes"`
	Pixels []rules.Color `json:"pixels"`
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts rendered frames to websocket viewers. It is a frame sink that
// never fails: a viewer that cannot keep up is disconnected.
type Hub struct {
	mu      sync.Mutex
	viewers map[*viewer]struct{}
	closed  bool
}

// NewHub returns a hub without viewers.
func NewHub() *Hub {
	return &Hub{viewers: map[*viewer]struct{}{}}
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// PutFrame queues f for every viewer.
func (h *Hub) PutFrame(ctx context.Context, f *rules.Frame) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.viewers) == 0 {
		return nil
	}

	data, err := json.Marshal(FrameMessage{
		Turn:   f.Turn,
		Width:  f.Width,
		Height: f.Height,
		Snakes: f.Snakes,
		Pixels: f.Pixels,
	})
	if err != nil {
		return errors.Wrap(err, "api: unable to encode frame")
	}

	for v := range h.viewers {
		select {
		case v.send <- data:
		default:
			log.WithField("Turn", f.Turn).Warn("dropping slow viewer")
			h.removeLocked(v)
		}
	}
	return nil
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for v := range h.viewers {
		h.removeLocked(v)
	}
}

func (h *Hub) add(v *viewer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.viewers[v] = struct{}{}
	setViewers(len(h.viewers))
	return true
}

func (h *Hub) remove(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(v)
}

func (h *Hub) removeLocked(v *viewer) {
	if _, ok := h.viewers[v]; !ok {
		return
	}
	delete(h.viewers, v)
	close(v.send)
	setViewers(len(h.viewers))
}

func (h *Hub) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("unable to upgrade viewer connection")
		return
	}

	v := &viewer{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.add(v) {
		conn.Close()
		return
	}
	log.WithField("Remote", r.RemoteAddr).Info("viewer connected")

	go v.writeLoop()

	// Viewers never send anything; reading only notices the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(v)
	log.WithField("Remote", r.RemoteAddr).Info("viewer disconnected")
}

func (v *viewer) writeLoop() {
	defer v.conn.Close()

	for data := range v.send {
		_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := v.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	_ = v.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}
