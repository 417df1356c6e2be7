// Package lighthousetest provides an in-process Lighthouse server for tests.
package lighthousetest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lightsnake/engine/lighthouse"
	"github.com/vmihailenco/msgpack/v5"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type response struct {
	Code      int         `msgpack:"RNUM"`
	RequestID int         `msgpack:"REID"`
	Warnings  []string    `msgpack:"WARNINGS"`
	Response  *string     `msgpack:"RESPONSE"`
	Payload   interface{} `msgpack:"PAYL"`
}

type conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

func (c *conn) write(r *response) error {
	data, err := msgpack.Marshal(r)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteMessage(websocket.BinaryMessage, data)
}

type stream struct {
	conn *conn
	id   int
}

// Server accepts PUT and STREAM requests on any user's model, records every
// frame put and lets tests push input events to subscribed streams.
type Server struct {
	srv   *httptest.Server
	token string

	mu      sync.Mutex
	conns   []*conn
	streams []stream
	frames  [][]byte
	paths   [][]string
	putCode int
}

// NewServer starts a server. A non-empty token is required on every request.
func NewServer(token string) *Server {
	s := &Server{token: token, putCode: lighthouse.StatusOK}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// URL is the websocket URL of the server.
func (s *Server) URL() string {
	return "ws" + strings.TrimPrefix(s.srv.URL, "http")
}

// Close disconnects all clients and stops the server.
func (s *Server) Close() {
	s.mu.Lock()
	for _, c := range s.conns {
		c.ws.Close()
	}
	s.mu.Unlock()
	s.srv.Close()
}

// Disconnect closes every client connection with a normal close frame.
func (s *Server) Disconnect() {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.streams = nil
	s.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	for _, c := range conns {
		c.writeMu.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		c.writeMu.Unlock()
		c.ws.Close()
	}
}

// SetPutCode makes subsequent PUT requests answer with code.
func (s *Server) SetPutCode(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putCode = code
}

// Frames returns the payloads of all successful PUT requests so far.
func (s *Server) Frames() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.frames...)
}

// Paths returns the paths of all successful PUT requests so far.
func (s *Server) Paths() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.paths...)
}

// Streams returns the number of live STREAM subscriptions.
func (s *Server) Streams() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.streams)
}

// SendKey pushes a keyboard event to every stream.
func (s *Server) SendKey(source int, code string, down bool) {
	s.broadcast(&lighthouse.InputEvent{
		Type:   "key",
		Source: source,
		Code:   code,
		Down:   down,
	})
}

// SendGamepadButton pushes a gamepad button event to every stream.
func (s *Server) SendGamepadButton(source int, index int, down bool) {
	s.broadcast(&lighthouse.InputEvent{
		Type:   "gamepad",
		Source: source,
		Control: &lighthouse.GamepadControl{
			Type:  "button",
			Index: index,
			Down:  down,
		},
	})
}

func (s *Server) broadcast(ev *lighthouse.InputEvent) {
	s.mu.Lock()
	streams := append([]stream(nil), s.streams...)
	s.mu.Unlock()

	for _, st := range streams {
		_ = st.conn.write(&response{
			Code:      lighthouse.StatusOK,
			RequestID: st.id,
			Payload:   ev,
		})
	}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &conn{ws: ws}

	s.mu.Lock()
	s.conns = append(s.conns, c)
	s.mu.Unlock()

	defer s.drop(c)

	for {
		mt, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.BinaryMessage {
			continue
		}
		req := &lighthouse.ClientMessage{}
		if err := msgpack.Unmarshal(data, req); err != nil {
			continue
		}
		if err := c.write(s.handle(c, req)); err != nil {
			return
		}
	}
}

func (s *Server) handle(c *conn, req *lighthouse.ClientMessage) *response {
	res := &response{Code: lighthouse.StatusOK, RequestID: req.RequestID}
	if s.token != "" && req.Auth.Token != s.token {
		res.Code = http.StatusUnauthorized
		res.Response = stringPtr("invalid token")
		return res
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Verb {
	case lighthouse.VerbPut:
		res.Code = s.putCode
		if res.Code != lighthouse.StatusOK {
			return res
		}
		payload, ok := req.Payload.([]byte)
		if !ok {
			res.Code = http.StatusBadRequest
			res.Response = stringPtr("payload is not binary")
			return res
		}
		s.frames = append(s.frames, payload)
		s.paths = append(s.paths, req.Path)
	case lighthouse.VerbStream:
		s.streams = append(s.streams, stream{conn: c, id: req.RequestID})
	case lighthouse.VerbStop:
		s.removeStreams(func(st stream) bool { return st.conn == c && st.id == req.RequestID })
	default:
		res.Code = http.StatusBadRequest
		res.Response = stringPtr("unknown verb")
	}
	return res
}

func (s *Server) drop(c *conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, other := range s.conns {
		if other == c {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			break
		}
	}
	s.removeStreams(func(st stream) bool { return st.conn == c })
	c.ws.Close()
}

func (s *Server) removeStreams(match func(stream) bool) {
	kept := s.streams[:0]
	for _, st := range s.streams {
		if !match(st) {
			kept = append(kept, st)
		}
	}
	s.streams = kept
}

func stringPtr(s string) *string {
	return &s
}
