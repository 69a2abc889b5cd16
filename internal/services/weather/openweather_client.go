package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-display/internal/models"
)

const (
	EndpointCurrent  = "weather"
	EndpointForecast = "forecast"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type apiCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// The current-conditions endpoint reports success as a number, the forecast
// endpoint as a string. Both are kept raw and checked with their own type.
type currentResponse struct {
	Cod     json.RawMessage `json:"cod"`
	Status  json.RawMessage `json:"status"`
	Message json.RawMessage `json:"message"`
	Name    string          `json:"name"`
	Main    struct {
		Temp        float64 `json:"temp"`
		FeelsLike   float64 `json:"feels_like"`
		Pressure    int     `json:"pressure"`
		Humidity    int     `json:"humidity"`
		GroundLevel *int    `json:"grnd_level"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Visibility int            `json:"visibility"`
	Weather    []apiCondition `json:"weather"`
}

type forecastResponse struct {
	Cod     json.RawMessage `json:"cod"`
	Message json.RawMessage `json:"message"`
	City    struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt    int64  `json:"dt"`
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []apiCondition `json:"weather"`
	} `json:"list"`
}

// ClientOpenWeatherMap fetches current conditions and the 5-day/3-hour forecast
// for a coordinate.
type ClientOpenWeatherMap struct {
	apiKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

func NewClientOpenWeatherMap(apiKey, apiURL string,
	httpClient HTTPClient, logger zerolog.Logger,
) *ClientOpenWeatherMap {
	return &ClientOpenWeatherMap{
		apiKey: apiKey,
		apiURL: strings.TrimRight(apiURL, "/"),
		client: httpClient,
		logger: logger.With().Str("component", "OpenWeatherMap").Logger(),
	}
}

func (s *ClientOpenWeatherMap) Current(ctx context.Context, c models.Coordinate) (models.CurrentConditions, error) {
	var raw currentResponse
	if err := s.get(ctx, EndpointCurrent, c, &raw); err != nil {
		return models.CurrentConditions{}, err
	}

	marker := raw.Cod
	if len(marker) == 0 {
		marker = raw.Status
	}
	if !isNumber200(marker) {
		return models.CurrentConditions{}, &UpstreamError{
			Endpoint: EndpointCurrent,
			Code:     string(marker),
			Message:  textMessage(raw.Message),
		}
	}

	cond := firstCondition(raw.Weather)
	return models.CurrentConditions{
		City:        raw.Name,
		Temperature: raw.Main.Temp,
		FeelsLike:   raw.Main.FeelsLike,
		Condition:   models.ParseCategory(cond.Main),
		Description: cond.Description,
		Humidity:    raw.Main.Humidity,
		Pressure:    raw.Main.Pressure,
		GroundLevel: raw.Main.GroundLevel,
		WindSpeed:   raw.Wind.Speed,
		Visibility:  raw.Visibility,
	}, nil
}

func (s *ClientOpenWeatherMap) Forecast(ctx context.Context, c models.Coordinate) (models.Forecast, error) {
	var raw forecastResponse
	if err := s.get(ctx, EndpointForecast, c, &raw); err != nil {
		return models.Forecast{}, err
	}

	if !isString200(raw.Cod) {
		return models.Forecast{}, &UpstreamError{
			Endpoint: EndpointForecast,
			Code:     string(raw.Cod),
			Message:  textMessage(raw.Message),
		}
	}

	fc := models.Forecast{
		City:    raw.City.Name,
		Entries: make([]models.ForecastEntry, 0, len(raw.List)),
	}
	for _, item := range raw.List {
		fc.Entries = append(fc.Entries, models.ForecastEntry{
			Timestamp:   time.Unix(item.Dt, 0).UTC(),
			Label:       item.DtTxt,
			Temperature: item.Main.Temp,
			Condition:   models.ParseCategory(firstCondition(item.Weather).Main),
			Main:        firstCondition(item.Weather).Main,
		})
	}
	return fc, nil
}

func (s *ClientOpenWeatherMap) get(ctx context.Context, endpoint string, c models.Coordinate, out any) error {
	start := time.Now()

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	values.Set("appid", s.apiKey)
	values.Set("units", "metric")
	reqURL := fmt.Sprintf("%s/%s?%s", s.apiURL, endpoint, values.Encode())

	s.logger.Debug().
		Str("endpoint", endpoint).
		Stringer("coordinate", c).
		Msg("starting OpenWeatherMap request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		s.logger.Error().Err(err).Str("endpoint", endpoint).Msg("failed to create HTTP request")
		return &TransportError{Endpoint: endpoint, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("endpoint", endpoint).Msg("error sending HTTP request to OpenWeatherMap")
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().Err(cerr).Str("endpoint", endpoint).Msg("failed to close response body")
		}
	}()

	// Error payloads come with 4xx statuses but still carry cod/message,
	// so the body is decoded regardless of the HTTP status.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		s.logger.Error().
			Err(err).
			Str("endpoint", endpoint).
			Int("http_status", resp.StatusCode).
			Msg("failed to decode OpenWeatherMap response")
		return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("decode: %w", err)}
	}

	s.logger.Info().
		Str("endpoint", endpoint).
		Int("http_status", resp.StatusCode).
		Dur("duration_ms", time.Since(start)).
		Msg("OpenWeatherMap request finished")
	return nil
}

func firstCondition(items []apiCondition) apiCondition {
	if len(items) == 0 {
		return apiCondition{}
	}
	return items[0]
}

func isNumber200(raw json.RawMessage) bool {
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return false
	}
	return n == http.StatusOK
}

func isString200(raw json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return s == "200"
}

// textMessage reads "message", which either endpoint may send as a number.
func textMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil && n.String() != "0" {
		return n.String()
	}
	return ""
}
