// Package session runs the input router and the tick loop of one arena side by
// side until one of them fails.
package session

import (
	"context"
	"time"

	"github.com/lightsnake/engine/controller"
	"github.com/lightsnake/engine/rules"
	"github.com/lightsnake/engine/worker"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Session ties an arena to its input router and tick loop.
type Session struct {
	ID     string
	Arena  *rules.Arena
	Router *controller.Router
	Worker *worker.Worker
}

// New prepares a session that sends frames to sink every interval.
func New(arena *rules.Arena, sink worker.Sink, interval time.Duration) *Session {
	return &Session{
		ID:     uuid.NewV4().String(),
		Arena:  arena,
		Router: controller.NewRouter(arena),
		Worker: &worker.Worker{
			Arena:        arena,
			Sink:         sink,
			TickInterval: interval,
		},
	}
}

// Run reads input from src and ticks the arena concurrently. The first error
// cancels the other task and is returned. An input stream that ends cleanly
// leaves the display running.
func (s *Session) Run(ctx context.Context, src controller.Source) error {
	lg := log.WithField("Session", s.ID)
	lg.WithField("Interval", s.Worker.TickInterval).Info("session started")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Router.Run(ctx, src)
	})
	g.Go(func() error {
		return s.Worker.Run(ctx)
	})

	err := g.Wait()
	if err != nil && err != context.Canceled {
		lg.WithError(err).Error("session ended")
	} else {
		lg.Info("session ended")
	}
	return err
}

// Run is a shorthand for New(arena, sink, interval).Run(ctx, src).
func Run(ctx context.Context, arena *rules.Arena, src controller.Source, sink worker.Sink, interval time.Duration) error {
	return New(arena, sink, interval).Run(ctx, src)
}
