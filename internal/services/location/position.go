package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-display/internal/models"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FixedPosition always reports the same point.
type FixedPosition struct {
	Coordinate models.Coordinate
}

func (f FixedPosition) CurrentPosition(context.Context) (models.Coordinate, error) {
	return f.Coordinate, nil
}

type ipLocatorResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
}

// IPLocator gets a one-shot position fix from an IP geolocation service.
type IPLocator struct {
	url    string
	client HTTPClient
	logger zerolog.Logger
}

func NewIPLocator(url string, client HTTPClient, logger zerolog.Logger) *IPLocator {
	return &IPLocator{
		url:    url,
		client: client,
		logger: logger.With().Str("component", "IPLocator").Logger(),
	}
}

func (l *IPLocator) CurrentPosition(ctx context.Context) (models.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return models.Coordinate{}, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Error().Err(err).Str("url", l.url).Msg("position request failed")
		return models.Coordinate{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			l.logger.Error().Err(cerr).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, fmt.Errorf("locator error: status %s", resp.Status)
	}

	var raw ipLocatorResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Coordinate{}, fmt.Errorf("decode locator response: %w", err)
	}
	if raw.Status != "success" {
		return models.Coordinate{}, fmt.Errorf("locator refused: %s", raw.Message)
	}

	l.logger.Debug().
		Float64("lat", raw.Lat).
		Float64("lon", raw.Lon).
		Str("city", raw.City).
		Msg("position fix acquired")
	return models.Coordinate{Latitude: raw.Lat, Longitude: raw.Lon}, nil
}
