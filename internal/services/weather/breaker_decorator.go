package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Nazarious-ucu/weather-display/internal/models"
)

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerClient guards each endpoint with its own circuit breaker. Only
// transport failures count against a breaker; an upstream refusal means the
// service answered.
type BreakerClient struct {
	name     string
	current  *gobreaker.CircuitBreaker
	forecast *gobreaker.CircuitBreaker
	wrapped  provider
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped provider) *BreakerClient {
	settings := func(endpoint string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name + "/" + endpoint,
			MaxRequests: 1,
			Interval:    cfg.TimeInterval,
			Timeout:     cfg.TimeTimeOut,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.RepeatNumber
			},
			IsSuccessful: func(err error) bool {
				return err == nil || KindOf(err) != KindTransport
			},
		}
	}
	return &BreakerClient{
		name:     name,
		current:  gobreaker.NewCircuitBreaker(settings(EndpointCurrent)),
		forecast: gobreaker.NewCircuitBreaker(settings(EndpointForecast)),
		wrapped:  wrapped,
	}
}

func (b *BreakerClient) Current(ctx context.Context, c models.Coordinate) (models.CurrentConditions, error) {
	result, err := b.current.Execute(func() (interface{}, error) {
		return b.wrapped.Current(ctx, c)
	})
	if err != nil {
		return models.CurrentConditions{}, b.wrapErr(EndpointCurrent, err)
	}
	res, ok := result.(models.CurrentConditions)
	if !ok {
		return models.CurrentConditions{},
			&TransportError{Endpoint: EndpointCurrent, Err: fmt.Errorf("%s returned unexpected result", b.name)}
	}
	return res, nil
}

func (b *BreakerClient) Forecast(ctx context.Context, c models.Coordinate) (models.Forecast, error) {
	result, err := b.forecast.Execute(func() (interface{}, error) {
		return b.wrapped.Forecast(ctx, c)
	})
	if err != nil {
		return models.Forecast{}, b.wrapErr(EndpointForecast, err)
	}
	res, ok := result.(models.Forecast)
	if !ok {
		return models.Forecast{},
			&TransportError{Endpoint: EndpointForecast, Err: fmt.Errorf("%s returned unexpected result", b.name)}
	}
	return res, nil
}

func (b *BreakerClient) wrapErr(endpoint string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("%s unavailable: %w", b.name, err)}
	}
	return err
}

// State reports the breaker state per endpoint, for diagnostics.
func (b *BreakerClient) State() map[string]string {
	return map[string]string{
		EndpointCurrent:  b.current.State().String(),
		EndpointForecast: b.forecast.State().String(),
	}
}
