package logger_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Nazarious-ucu/weather-display/internal/services/logger"
)

func TestRoundTripper_MasksAPIKeyAndKeepsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"cod":"200"}`))
	}))
	t.Cleanup(srv.Close)

	core, logs := observer.New(zapcore.InfoLevel)
	client := &http.Client{Transport: logger.NewRoundTripper(zap.New(core))}

	resp, err := client.Get(srv.URL + "/forecast?lat=1&appid=secret-key&units=metric")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"cod":"200"}`, string(body))

	entries := logs.FilterMessage("HTTP request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.NotContains(t, fields["url"], "secret-key")
	assert.Contains(t, fields["url"], "appid=%2A%2A%2A")
	assert.Equal(t, int64(http.StatusOK), fields["status_code"])
}

func TestRoundTripper_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	core, logs := observer.New(zapcore.InfoLevel)
	client := &http.Client{Transport: logger.NewRoundTripper(zap.New(core))}

	_, err := client.Get(addr + "/weather?appid=secret-key")
	require.Error(t, err)

	entries := logs.FilterMessage("HTTP request failed").All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].ContextMap()["url"], "secret-key")
}
