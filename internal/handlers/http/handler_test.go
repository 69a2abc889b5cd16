package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	handlers "github.com/Nazarious-ucu/weather-display/internal/handlers/http"
	"github.com/Nazarious-ucu/weather-display/internal/models"
	"github.com/Nazarious-ucu/weather-display/internal/services/display"
	"github.com/Nazarious-ucu/weather-display/internal/services/location"
	"github.com/Nazarious-ucu/weather-display/internal/services/session"
)

var delhi = models.Coordinate{Latitude: 28.5, Longitude: 77.2}

type mockSession struct {
	mock.Mock
}

func (m *mockSession) UseCurrentLocation(ctx context.Context) session.Outcome {
	return m.Called(ctx).Get(0).(session.Outcome)
}

func (m *mockSession) ToggleMap() location.PickerView {
	return m.Called().Get(0).(location.PickerView)
}

func (m *mockSession) TapMap(c models.Coordinate) location.PickerView {
	return m.Called(c).Get(0).(location.PickerView)
}

func (m *mockSession) ConfirmMap(ctx context.Context) session.Outcome {
	return m.Called(ctx).Get(0).(session.Outcome)
}

func (m *mockSession) Snapshot() session.Outcome {
	return m.Called().Get(0).(session.Outcome)
}

func newRouter(m *mockSession) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.NewHandler(m, zerolog.Nop()).Register(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(rec, req)
	return rec
}

func readyState() models.AcquisitionState {
	return models.Ready(1, delhi,
		models.CurrentConditions{City: "Delhi", Temperature: 25.4, Condition: models.CategoryClear},
		models.Forecast{Entries: []models.ForecastEntry{{Label: "2024-01-01 03:00:00", Temperature: 22.1, Condition: models.CategoryClouds}}},
	)
}

func TestUseCurrentLocation(t *testing.T) {
	m := new(mockSession)
	m.On("UseCurrentLocation", mock.Anything).
		Return(session.Outcome{State: readyState(), Acquired: true}).Once()
	t.Cleanup(func() { m.AssertExpectations(t) })

	rec := do(newRouter(m), http.MethodPost, "/api/location/current", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var out session.Outcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Acquired)
	assert.Equal(t, models.StatusReady, out.State.Status)
	assert.Equal(t, "Delhi", out.State.Conditions.City)
}

func TestUseCurrentLocation_PermissionDeniedNotice(t *testing.T) {
	m := new(mockSession)
	notice := models.Notice{Kind: session.NoticePermissionDenied, Title: "Location Denied"}
	m.On("UseCurrentLocation", mock.Anything).
		Return(session.Outcome{State: models.Idle(), Notice: &notice}).Once()

	rec := do(newRouter(m), http.MethodPost, "/api/location/current", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Location Denied"`)
	assert.Contains(t, rec.Body.String(), `"acquired":false`)
}

func TestTapMap(t *testing.T) {
	tapped := models.Coordinate{Latitude: 0, Longitude: -181}
	m := new(mockSession)
	m.On("TapMap", tapped).
		Return(location.PickerView{Visible: true, Selection: &tapped}).Once()
	t.Cleanup(func() { m.AssertExpectations(t) })

	rec := do(newRouter(m), http.MethodPost, "/api/map/tap", `{"latitude":0,"longitude":-181}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var view location.PickerView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.NotNil(t, view.Selection)
	assert.Equal(t, tapped, *view.Selection)
}

func TestTapMap_MissingField(t *testing.T) {
	m := new(mockSession)
	t.Cleanup(func() { m.AssertExpectations(t) })

	rec := do(newRouter(m), http.MethodPost, "/api/map/tap", `{"latitude":12.5}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"latitude and longitude are required"}`, rec.Body.String())
}

func TestConfirmMap_NoSelection(t *testing.T) {
	m := new(mockSession)
	notice := models.Notice{Kind: session.NoticeNoSelection, Title: "Select Location"}
	m.On("ConfirmMap", mock.Anything).Return(session.Outcome{State: models.Idle(), Notice: &notice}).Once()

	rec := do(newRouter(m), http.MethodPost, "/api/map/confirm", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"no_selection"`)
}

func TestConfirmMap_Acquired(t *testing.T) {
	m := new(mockSession)
	m.On("ConfirmMap", mock.Anything).Return(session.Outcome{State: readyState(), Acquired: true}).Once()

	rec := do(newRouter(m), http.MethodPost, "/api/map/confirm", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestToggleAndGetMap(t *testing.T) {
	m := new(mockSession)
	region := models.NewMapRegion(delhi, models.WideRegionDelta)
	m.On("ToggleMap").Return(location.PickerView{Visible: true, Region: region}).Once()
	m.On("Snapshot").Return(session.Outcome{Map: location.PickerView{Visible: true, Region: region}}).Once()
	r := newRouter(m)

	rec := do(r, http.MethodPost, "/api/map/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"visible":true`)

	rec = do(r, http.MethodGet, "/api/map", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var view location.PickerView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, region, view.Region)
}

func TestGetState(t *testing.T) {
	m := new(mockSession)
	m.On("Snapshot").Return(session.Outcome{State: models.Failed(3, &delhi, "upstream", "city not found")}).Once()

	rec := do(newRouter(m), http.MethodGet, "/api/state", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var st models.AcquisitionState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, models.StatusError, st.Status)
	assert.Equal(t, "city not found", st.Error.Message)
}

func TestGetDisplay(t *testing.T) {
	m := new(mockSession)
	m.On("Snapshot").Return(session.Outcome{State: readyState()}).Once()

	rec := do(newRouter(m), http.MethodGet, "/api/display", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var v display.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "25°C", v.Hero.Temperature)
	assert.Equal(t, "Delhi", v.Hero.City)
	require.Len(t, v.Hourly, 1)
	assert.Equal(t, "22°C", v.Hourly[0].Temperature)
}

func TestGetDisplay_Idle(t *testing.T) {
	m := new(mockSession)
	m.On("Snapshot").Return(session.Outcome{State: models.Idle()}).Once()

	rec := do(newRouter(m), http.MethodGet, "/api/display", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var v display.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "Weather App", v.Hero.City)
	assert.Empty(t, v.Hourly)
}
