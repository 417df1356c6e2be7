// Package worker provides the actual running of the game. Every tick it
// advances the shared arena, renders a frame and pushes it to the display.
package worker

import (
	"context"
	"time"

	"github.com/lightsnake/engine/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultTickInterval is the pause between two ticks.
const DefaultTickInterval = 200 * time.Millisecond

// Worker is the render/tick loop.
type Worker struct {
	Arena        *rules.Arena
	Sink         Sink
	TickInterval time.Duration
}

// Run ticks until the context ends or the sink fails. A sink failure is
// returned as is, without retrying.
func (w *Worker) Run(ctx context.Context) error {
	interval := w.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frame := w.tick()

		if err := w.Sink.PutFrame(ctx, frame); err != nil {
			return errors.Wrapf(err, "worker: unable to send frame for turn %d", frame.Turn)
		}
		log.WithField("Turn", frame.Turn).Debug("sent frame")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// tick advances the arena and renders it while holding the lock. The frame is
// sent after the lock is released so slow displays never block input.
func (w *Worker) tick() *rules.Frame {
	defer instrument()()

	var (
		res    rules.TickResult
		frame  *rules.Frame
		roster int
	)
	w.Arena.Do(func(s *rules.State) {
		res = s.Tick()
		frame = s.Render()
		roster = s.Len()
	})

	report(res, roster)
	return frame
}

func report(res rules.TickResult, roster int) {
	rosterSize.Set(float64(roster))

	for _, d := range res.Deaths {
		deaths.WithLabelValues(d.Cause).Inc()
		log.WithFields(log.Fields{
			"Turn":   res.Turn,
			"Slot":   d.Index,
			"Cause":  d.Cause,
			"Length": d.Length,
		}).Info("snake died")
	}

	if res.Eater >= 0 {
		fruitEaten.Inc()
		log.WithFields(log.Fields{
			"Turn":   res.Turn,
			"Slot":   res.Eater,
			"Length": res.Length,
		}).Info("snake grew")
	}

	if res.Won {
		wins.Inc()
		log.WithField("Turn", res.Turn).Info("board is full, resetting arena")
	}
}
