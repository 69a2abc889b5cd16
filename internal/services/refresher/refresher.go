package refresher

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-display/internal/services/session"
)

type refreshable interface {
	Refresh(ctx context.Context) (session.Outcome, bool)
}

type runRecorder interface {
	IncRefresh(result string)
}

// Refresher re-acquires the committed coordinate on a cron schedule. It does
// not react to failed cycles.
type Refresher struct {
	session  refreshable
	recorder runRecorder
	logger   zerolog.Logger
	cron     *cron.Cron
	cancel   context.CancelFunc
	spec     string
}

// New returns a Refresher for the given six-field cron spec.
func New(s refreshable, recorder runRecorder, logger zerolog.Logger, spec string) *Refresher {
	return &Refresher{
		session:  s,
		recorder: recorder,
		logger:   logger.With().Str("component", "Refresher").Logger(),
		cron:     cron.New(cron.WithSeconds()),
		spec:     spec,
	}
}

// Start schedules the job. An empty spec leaves the refresher idle.
func (r *Refresher) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	if r.spec == "" {
		r.logger.Info().Msg("refresh schedule not set, refresher disabled")
		return nil
	}

	if _, err := r.cron.AddFunc(r.spec, func() { r.RunOnce(ctx) }); err != nil {
		r.logger.Error().Err(err).Str("spec", r.spec).Msg("failed to schedule refresh job")
		cancel()
		return err
	}

	r.cron.Start()
	r.logger.Info().Str("spec", r.spec).Msg("weather refresher started")
	return nil
}

// Stop cancels the schedule and waits for a running job.
func (r *Refresher) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	<-r.cron.Stop().Done()
	r.logger.Info().Msg("refresher stopped")
}

// RunOnce refreshes the committed coordinate, if there is one.
func (r *Refresher) RunOnce(ctx context.Context) {
	start := time.Now()

	out, ran := r.session.Refresh(ctx)
	if !ran {
		r.logger.Debug().Msg("no committed coordinate yet, skipping refresh")
		r.recorder.IncRefresh("skipped")
		return
	}

	r.recorder.IncRefresh(string(out.State.Status))
	r.logger.Info().
		Str("status", string(out.State.Status)).
		Uint64("generation", out.State.Generation).
		Dur("duration", time.Since(start)).
		Msg("refresh completed")
}
