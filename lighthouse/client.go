// Package lighthouse is a client for the Lighthouse display server. Requests
// and responses are MessagePack documents sent as binary websocket messages
// and matched by request id.
package lighthouse

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lightsnake/engine/controller"
	"github.com/lightsnake/engine/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/time/rate"
)

// ErrClosed is returned for requests made after the client was closed.
var ErrClosed = errors.New("lighthouse: client closed")

// streamBuffer is how many streamed messages may queue up before the read
// loop waits for the consumer.
const streamBuffer = 256

// Options tunes the client.
type Options struct {
	// Rate and Burst bound outgoing requests. Zero means unlimited.
	Rate  rate.Limit
	Burst int
	// HandshakeTimeout bounds the websocket handshake.
	HandshakeTimeout time.Duration
}

// Client is a connection to the Lighthouse server.
type Client struct {
	conn    *websocket.Conn
	auth    Authentication
	limiter *rate.Limiter

	writeMu sync.Mutex

	mu      sync.Mutex
	nextID  int
	pending map[int]*subscription
	err     error
	done    chan struct{}
}

type subscription struct {
	ch   chan *ServerMessage
	done chan struct{}
	once sync.Once
}

func (s *subscription) close() {
	s.once.Do(func() { close(s.done) })
}

// Connect dials the server and starts reading responses.
func Connect(ctx context.Context, url string, auth Authentication, opts Options) (*Client, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: opts.HandshakeTimeout,
	}
	if dialer.HandshakeTimeout == 0 {
		dialer.HandshakeTimeout = 10 * time.Second
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "lighthouse: unable to connect to %s", url)
	}

	limit, burst := opts.Rate, opts.Burst
	if limit <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}

	c := &Client{
		conn:    conn,
		auth:    auth,
		limiter: rate.NewLimiter(limit, burst),
		pending: map[int]*subscription{},
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Done is closed once the connection is gone.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns why the connection ended, or nil while it is alive. A normal
// close by the server is reported as io.EOF.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close closes the connection. Pending requests fail with ErrClosed.
func (c *Client) Close() error {
	c.fail(ErrClosed)

	c.writeMu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()

	err := c.conn.Close()
	<-c.done
	return err
}

func (c *Client) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err == nil {
		c.err = err
	}
}

func (c *Client) readLoop() {
	defer close(c.done)

	for {
		mt, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				err = io.EOF
			} else {
				err = errors.Wrap(err, "lighthouse: connection lost")
			}
			c.fail(err)
			return
		}
		if mt != websocket.BinaryMessage {
			continue
		}

		msg := &ServerMessage{}
		if err := msgpack.Unmarshal(data, msg); err != nil {
			log.WithError(err).Warn("lighthouse: unable to decode server message")
			continue
		}
		if msg.RequestID == nil {
			continue
		}

		c.mu.Lock()
		sub, ok := c.pending[*msg.RequestID]
		c.mu.Unlock()
		if !ok {
			continue
		}

		select {
		case sub.ch <- msg:
		case <-sub.done:
		}
	}
}

func (c *Client) forget(id int) {
	c.mu.Lock()
	sub, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()

	if ok {
		sub.close()
	}
}

// send writes a request and registers for its responses.
func (c *Client) send(ctx context.Context, verb string, path []string, payload interface{}, buffer int) (int, *subscription, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, err
	}

	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return 0, nil, errors.Wrap(err, "lighthouse: connection closed")
	}
	c.nextID++
	id := c.nextID
	sub := &subscription{
		ch:   make(chan *ServerMessage, buffer),
		done: make(chan struct{}),
	}
	c.pending[id] = sub
	c.mu.Unlock()

	if err := c.write(id, verb, path, payload); err != nil {
		c.forget(id)
		return 0, nil, err
	}
	return id, sub, nil
}

func (c *Client) write(id int, verb string, path []string, payload interface{}) error {
	data, err := msgpack.Marshal(&ClientMessage{
		RequestID: id,
		Auth:      c.auth,
		Verb:      verb,
		Path:      path,
		Meta:      map[string]interface{}{},
		Payload:   payload,
	})
	if err != nil {
		return errors.Wrap(err, "lighthouse: unable to encode request")
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return errors.Wrapf(err, "lighthouse: unable to send %s", verb)
	}
	return nil
}

// Request sends one request and waits for its response. A non-200 response is
// returned as a *RequestError.
func (c *Client) Request(ctx context.Context, verb string, path []string, payload interface{}) (*ServerMessage, error) {
	defer instrument(verb)()

	id, sub, err := c.send(ctx, verb, path, payload, 1)
	if err != nil {
		return nil, err
	}
	defer c.forget(id)

	select {
	case msg := <-sub.ch:
		if msg.Code != StatusOK {
			return msg, newRequestError(verb, path, msg)
		}
		return msg, nil
	case <-c.done:
		return nil, errors.Wrapf(c.Err(), "lighthouse: %s aborted", verb)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// PutModel displays a frame on the user's model.
func (c *Client) PutModel(ctx context.Context, f *rules.Frame) error {
	_, err := c.Request(ctx, VerbPut, ModelPath(c.auth.Username), f.Bytes())
	return err
}

// PutFrame makes the client a frame sink for the tick loop.
func (c *Client) PutFrame(ctx context.Context, f *rules.Frame) error {
	return c.PutModel(ctx, f)
}

// StreamInput subscribes to input events on the user's model.
func (c *Client) StreamInput(ctx context.Context) (*InputStream, error) {
	path := ModelPath(c.auth.Username)
	id, sub, err := c.send(ctx, VerbStream, path, nil, streamBuffer)
	if err != nil {
		return nil, err
	}
	log.WithField("path", path).Info("streaming lighthouse input")
	return &InputStream{client: c, id: id, sub: sub, path: path}, nil
}

// InputStream yields the input events of a STREAM subscription.
type InputStream struct {
	client *Client
	id     int
	sub    *subscription
	path   []string
	once   sync.Once
}

// Next blocks until the next input event. It returns io.EOF once the server
// closed the connection normally.
func (s *InputStream) Next(ctx context.Context) (ev controller.Event, err error) {
	for {
		select {
		case msg := <-s.sub.ch:
			if msg.Code != StatusOK {
				return ev, newRequestError(VerbStream, s.path, msg)
			}
			if e, ok := decodeEvent(msg.Payload); ok {
				return e, nil
			}
		case <-s.sub.done:
			return ev, io.EOF
		case <-s.client.done:
			err := s.client.Err()
			if err == io.EOF {
				return ev, io.EOF
			}
			return ev, errors.Wrap(err, "lighthouse: input stream ended")
		case <-ctx.Done():
			return ev, ctx.Err()
		}
	}
}

// Close stops delivering events to this stream and sends STOP for it. The
// reply to STOP is not awaited.
func (s *InputStream) Close() {
	s.once.Do(func() {
		s.client.forget(s.id)
		if s.client.Err() != nil {
			return
		}
		if err := s.client.write(s.id, VerbStop, s.path, nil); err != nil {
			log.WithError(err).Debug("unable to stop lighthouse stream")
		}
	})
}
