package publisher

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-display/internal/models"
)

// Sink delivers applied state transitions somewhere outside the process.
type Sink interface {
	Name() string
	Send(ctx context.Context, ev models.StateEvent) error
}

type failureRecorder interface {
	IncPublishFailure(sink string)
}

// Fanout hands every event to all sinks in order. A failing sink is logged
// and skipped.
type Fanout struct {
	sinks    []Sink
	recorder failureRecorder
	logger   zerolog.Logger
}

func NewFanout(logger zerolog.Logger, recorder failureRecorder, sinks ...Sink) *Fanout {
	return &Fanout{
		sinks:    sinks,
		recorder: recorder,
		logger:   logger.With().Str("component", "Fanout").Logger(),
	}
}

func (f *Fanout) Publish(ctx context.Context, ev models.StateEvent) {
	for _, s := range f.sinks {
		if err := s.Send(ctx, ev); err != nil {
			f.logger.Error().
				Err(err).
				Str("sink", s.Name()).
				Str("status", string(ev.State.Status)).
				Uint64("generation", ev.State.Generation).
				Msg("failed to publish state event")
			if f.recorder != nil {
				f.recorder.IncPublishFailure(s.Name())
			}
		}
	}
}
