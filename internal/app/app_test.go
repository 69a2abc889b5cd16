package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-display/internal/config"
	"github.com/Nazarious-ucu/weather-display/internal/services/location"
	metricsSvc "github.com/Nazarious-ucu/weather-display/internal/services/metrics"
)

func TestNewPermission(t *testing.T) {
	tests := []struct {
		mode    string
		want    location.PermissionStatus
		wantErr bool
	}{
		{mode: "granted", want: location.PermissionGranted},
		{mode: "denied", want: location.PermissionDenied},
		{mode: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			p, err := newPermission(tt.mode)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownPermission)
				return
			}
			require.NoError(t, err)
			status, err := p.RequestForeground(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		OpenWeatherMap: config.OpenWeatherMap{APIKey: config.PlaceholderAPIKey, URL: "http://127.0.0.1:1"},
		Location: config.Location{
			DefaultLatitude:  28.5,
			DefaultLongitude: 77.2,
			Permission:       "denied",
			LocatorURL:       "http://127.0.0.1:1",
		},
		Server:  config.Server{Port: "0", ReadTimeout: 1},
		Breaker: config.Breaker{TimeInterval: 30, TimeTimeOut: 10, RepeatNumber: 5},
	}
}

func TestInit_RegistersRoutes(t *testing.T) {
	a := New(testConfig(t), zerolog.Nop(), metricsSvc.NewMetrics("wd_app_test"))

	sc, err := a.Init()
	require.NoError(t, err)

	for _, path := range []string{"/api/state", "/api/map", "/api/display", "/api/health", "/metrics"} {
		rec := httptest.NewRecorder()
		sc.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestInit_PlaceholderKeyYieldsConfigurationError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Location.Permission = "granted"
	a := New(cfg, zerolog.Nop(), metricsSvc.NewMetrics("wd_app_test"))

	sc, err := a.Init()
	require.NoError(t, err)

	out := sc.Session.Startup(context.Background())
	require.NotNil(t, out.State.Error)
	assert.Equal(t, "configuration invalid", out.State.Error.Message)
}

func TestInit_UnknownPermission(t *testing.T) {
	cfg := testConfig(t)
	cfg.Location.Permission = "maybe"

	_, err := New(cfg, zerolog.Nop(), metricsSvc.NewMetrics("wd_app_test")).Init()
	assert.ErrorIs(t, err, ErrUnknownPermission)
}
