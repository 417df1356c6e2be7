// Package api serves the arena state over HTTP for dashboards and debugging.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/lightsnake/engine/controller"
	"github.com/lightsnake/engine/rules"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// Server is the status API.
type Server struct {
	hs     *http.Server
	arena  *rules.Arena
	router *controller.Router
	hub    *Hub
}

// New will create a new api server listening on addr.
func New(addr string, arena *rules.Arena, router *controller.Router, hub *Hub) *Server {
	s := &Server{
		arena:  arena,
		router: router,
		hub:    hub,
	}

	r := httprouter.New()
	r.GET("/status", s.status)
	r.GET("/socket", s.socket)

	s.hs = &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(r),
	}
	return s
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	return s.hs.Handler
}

// WaitForExit serves until the server is shut down.
func (s *Server) WaitForExit() error {
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and closes all viewers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.hs.Shutdown(ctx)
}

type statusResponse struct {
	*rules.Snapshot
	Players map[string]int `json:"players"`
}

func (s *Server) status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var snap *rules.Snapshot
	s.arena.Do(func(st *rules.State) {
		snap = st.Snapshot()
	})

	resp := statusResponse{
		Snapshot: snap,
		Players:  s.router.Players(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.WithError(err).Warn("unable to write status")
	}
}

func (s *Server) socket(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.hub.serve(w, r)
}
