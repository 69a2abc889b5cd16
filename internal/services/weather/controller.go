package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-display/internal/models"
)

type provider interface {
	Current(ctx context.Context, c models.Coordinate) (models.CurrentConditions, error)
	Forecast(ctx context.Context, c models.Coordinate) (models.Forecast, error)
}

type credentials interface {
	HasValidAPIKey() bool
}

type regionCenterer interface {
	Recenter(c models.Coordinate, delta float64) models.MapRegion
	Region() models.MapRegion
}

type stateSink interface {
	Publish(ctx context.Context, ev models.StateEvent)
}

type cycleRecorder interface {
	ObserveCycle(result string, d time.Duration)
	ObserveEndpoint(endpoint string, kind string)
	IncStale()
}

// Controller turns a coordinate into an AcquisitionState. It is the only
// writer of that state.
//
// Every call to Acquire takes a new generation number. A cycle whose
// generation has been superseded by the time its join settles is discarded,
// so the visible state always belongs to the most recent trigger.
type Controller struct {
	provider provider
	creds    credentials
	region   regionCenterer
	sink     stateSink
	recorder cycleRecorder
	logger   zerolog.Logger

	// pubMu orders applying a state and publishing it, so sinks see
	// states in generation order. Taken before mu.
	pubMu sync.Mutex

	mu         sync.RWMutex
	state      models.AcquisitionState
	generation uint64
}

func NewController(
	p provider,
	creds credentials,
	region regionCenterer,
	sink stateSink,
	recorder cycleRecorder,
	logger zerolog.Logger,
) *Controller {
	if sink == nil {
		sink = nopSink{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Controller{
		provider: p,
		creds:    creds,
		region:   region,
		sink:     sink,
		recorder: recorder,
		logger:   logger.With().Str("component", "AcquisitionController").Logger(),
		state:    models.Idle(),
	}
}

// State returns the current acquisition state.
func (c *Controller) State() models.AcquisitionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Acquire runs one acquisition cycle for coord and returns the state the
// cycle settled into. The returned state is applied only if no newer cycle
// was started meanwhile.
func (c *Controller) Acquire(ctx context.Context, coord models.Coordinate) models.AcquisitionState {
	start := time.Now()

	if !c.creds.HasValidAPIKey() {
		gen := c.begin(ctx, nil)
		st := models.Failed(gen, &coord, string(KindConfiguration), msgConfiguration)
		c.logger.Error().
			Err(ErrConfiguration).
			Uint64("generation", gen).
			Msg("weather API key is missing or still the placeholder")
		c.settle(ctx, gen, st)
		c.recorder.ObserveCycle(string(KindConfiguration), time.Since(start))
		return st
	}

	gen := c.begin(ctx, &coord)
	c.logger.Info().
		Uint64("generation", gen).
		Stringer("coordinate", coord).
		Msg("acquisition started")

	var (
		wg          sync.WaitGroup
		current     models.CurrentConditions
		forecast    models.Forecast
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		defer recoverInto(&currentErr, EndpointCurrent)
		current, currentErr = c.provider.Current(ctx, coord)
	}()
	go func() {
		defer wg.Done()
		defer recoverInto(&forecastErr, EndpointForecast)
		forecast, forecastErr = c.provider.Forecast(ctx, coord)
	}()
	wg.Wait()

	c.recorder.ObserveEndpoint(EndpointCurrent, outcome(currentErr))
	c.recorder.ObserveEndpoint(EndpointForecast, outcome(forecastErr))

	var st models.AcquisitionState
	if currentErr != nil || forecastErr != nil {
		kind, msg := cycleFailure(currentErr, forecastErr)
		c.logger.Error().
			Uint64("generation", gen).
			Str("kind", string(kind)).
			AnErr("current_err", currentErr).
			AnErr("forecast_err", forecastErr).
			Msg("acquisition failed")
		st = models.Failed(gen, &coord, string(kind), msg)
		c.recorder.ObserveCycle(string(kind), time.Since(start))
	} else {
		st = models.Ready(gen, coord, current, forecast)
		c.logger.Info().
			Uint64("generation", gen).
			Str("city", current.City).
			Int("forecast_entries", len(forecast.Entries)).
			Dur("duration_ms", time.Since(start)).
			Msg("acquisition succeeded")
		c.recorder.ObserveCycle("ready", time.Since(start))
	}

	c.settle(ctx, gen, st)
	return st
}

// begin starts a new generation. With a coordinate it enters Loading.
func (c *Controller) begin(ctx context.Context, coord *models.Coordinate) uint64 {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	c.generation++
	gen := c.generation
	if coord != nil {
		c.state = models.Loading(gen, *coord)
	}
	st := c.state
	c.mu.Unlock()

	if coord != nil {
		c.publish(ctx, st)
	}
	return gen
}

func (c *Controller) settle(ctx context.Context, gen uint64, st models.AcquisitionState) {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	if gen != c.generation {
		latest := c.generation
		c.mu.Unlock()
		c.logger.Warn().
			Uint64("generation", gen).
			Uint64("latest", latest).
			Str("status", string(st.Status)).
			Msg("discarding result of superseded acquisition")
		c.recorder.IncStale()
		return
	}
	c.state = st
	if st.Status == models.StatusReady && st.Coordinate != nil && c.region != nil {
		c.region.Recenter(*st.Coordinate, models.NarrowRegionDelta)
	}
	c.mu.Unlock()

	c.publish(ctx, st)
}

func (c *Controller) publish(ctx context.Context, st models.AcquisitionState) {
	ev := models.StateEvent{State: st}
	if c.region != nil {
		ev.Map = c.region.Region()
	}
	c.sink.Publish(ctx, ev)
}

func recoverInto(errp *error, endpoint string) {
	if r := recover(); r != nil {
		*errp = &TransportError{Endpoint: endpoint, Err: fmt.Errorf("panic: %v", r)}
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(KindOf(err))
}

type nopSink struct{}

func (nopSink) Publish(context.Context, models.StateEvent) {}

type nopRecorder struct{}

func (nopRecorder) ObserveCycle(string, time.Duration) {}
func (nopRecorder) ObserveEndpoint(string, string)     {}
func (nopRecorder) IncStale()                          {}
