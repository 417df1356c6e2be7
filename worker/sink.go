package worker

import (
	"context"

	"github.com/lightsnake/engine/rules"
)

// Sink receives every rendered frame. An error from PutFrame ends the worker.
type Sink interface {
	PutFrame(ctx context.Context, f *rules.Frame) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, f *rules.Frame) error

// PutFrame calls fn.
func (fn SinkFunc) PutFrame(ctx context.Context, f *rules.Frame) error {
	return fn(ctx, f)
}

// Sinks fans a frame out to every sink in order, stopping at the first error.
func Sinks(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) PutFrame(ctx context.Context, f *rules.Frame) error {
	for _, s := range m {
		if err := s.PutFrame(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
