package lighthouse

import (
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// DefaultURL is the public Lighthouse websocket endpoint.
const DefaultURL = "wss://lighthouse.uni-kiel.de/websocket"

// Request verbs.
const (
	VerbPut    = "PUT"
	VerbStream = "STREAM"
	VerbStop   = "STOP"
)

// StatusOK is the RNUM of a successful response.
const StatusOK = 200

// Authentication identifies the user whose model is written.
type Authentication struct {
	Username string `msgpack:"USER"`
	Token    string `msgpack:"TOKEN"`
}

// ClientMessage is a request sent to the server.
type ClientMessage struct {
	RequestID int                    `msgpack:"REID"`
	Auth      Authentication         `msgpack:"AUTH"`
	Verb      string                 `msgpack:"VERB"`
	Path      []string               `msgpack:"PATH"`
	Meta      map[string]interface{} `msgpack:"META"`
	Payload   interface{}            `msgpack:"PAYL"`
}

// ServerMessage is a response, or a streamed update, from the server.
type ServerMessage struct {
	Code      int                `msgpack:"RNUM"`
	RequestID *int               `msgpack:"REID"`
	Warnings  []string           `msgpack:"WARNINGS"`
	Response  *string            `msgpack:"RESPONSE"`
	Payload   msgpack.RawMessage `msgpack:"PAYL"`
}

// RequestError is returned when the server answers with a non-200 RNUM.
type RequestError struct {
	Verb     string
	Path     []string
	Code     int
	Response string
	Warnings []string
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("lighthouse: %s /%s failed with %d", e.Verb, strings.Join(e.Path, "/"), e.Code)
	if e.Response != "" {
		msg += " " + e.Response
	}
	return msg
}

func newRequestError(verb string, path []string, msg *ServerMessage) *RequestError {
	e := &RequestError{
		Verb:     verb,
		Path:     path,
		Code:     msg.Code,
		Warnings: msg.Warnings,
	}
	if msg.Response != nil {
		e.Response = *msg.Response
	}
	return e
}

// ModelPath is the resource holding a user's display model.
func ModelPath(username string) []string {
	return []string{"user", username, "model"}
}
