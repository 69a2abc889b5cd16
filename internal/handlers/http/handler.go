package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-display/internal/models"
	"github.com/Nazarious-ucu/weather-display/internal/services/display"
	"github.com/Nazarious-ucu/weather-display/internal/services/location"
	"github.com/Nazarious-ucu/weather-display/internal/services/session"
)

type sessionService interface {
	UseCurrentLocation(ctx context.Context) session.Outcome
	ToggleMap() location.PickerView
	TapMap(c models.Coordinate) location.PickerView
	ConfirmMap(ctx context.Context) session.Outcome
	Snapshot() session.Outcome
}

// TapRequest is a point tapped on the map. Values are not range-checked.
type TapRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type Handler struct {
	session sessionService
	logger  zerolog.Logger
	now     func() time.Time
}

func NewHandler(s sessionService, logger zerolog.Logger) *Handler {
	return &Handler{
		session: s,
		logger:  logger.With().Str("component", "HTTPHandler").Logger(),
		now:     time.Now,
	}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.POST("/location/current", h.UseCurrentLocation)
	api.POST("/map/toggle", h.ToggleMap)
	api.POST("/map/tap", h.TapMap)
	api.POST("/map/confirm", h.ConfirmMap)
	api.GET("/state", h.GetState)
	api.GET("/map", h.GetMap)
	api.GET("/display", h.GetDisplay)
}

// UseCurrentLocation
// @Summary Use current location
// @Description Resolves the device position and runs an acquisition cycle for it.
// @Tags location
// @Produce json
// @Success 200 {object} session.Outcome
// @Router /location/current [post]
func (h *Handler) UseCurrentLocation(c *gin.Context) {
	out := h.session.UseCurrentLocation(acquisitionContext(c))
	c.JSON(http.StatusOK, out)
}

// ToggleMap
// @Summary Toggle map picker
// @Description Shows or hides the map picker. Hiding discards a pending selection.
// @Tags map
// @Produce json
// @Success 200 {object} location.PickerView
// @Router /map/toggle [post]
func (h *Handler) ToggleMap(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.ToggleMap())
}

// TapMap
// @Summary Tap on map
// @Description Stores a pending map selection. Nothing is fetched until it is confirmed.
// @Tags map
// @Accept json
// @Produce json
// @Param point body TapRequest true "Tapped point"
// @Success 200 {object} location.PickerView
// @Failure 400
// @Router /map/tap [post]
func (h *Handler) TapMap(c *gin.Context) {
	var req TapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid tap request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}

	view := h.session.TapMap(models.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude})
	c.JSON(http.StatusOK, view)
}

// ConfirmMap
// @Summary Confirm map selection
// @Description Commits the pending selection and runs an acquisition cycle for it.
// @Tags map
// @Produce json
// @Success 200 {object} session.Outcome
// @Failure 400 {object} session.Outcome
// @Router /map/confirm [post]
func (h *Handler) ConfirmMap(c *gin.Context) {
	out := h.session.ConfirmMap(acquisitionContext(c))
	if out.Notice != nil && out.Notice.Kind == session.NoticeNoSelection {
		c.JSON(http.StatusBadRequest, out)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetState
// @Summary Current acquisition state
// @Tags state
// @Produce json
// @Success 200 {object} models.AcquisitionState
// @Router /state [get]
func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Snapshot().State)
}

// GetMap
// @Summary Map picker view
// @Tags map
// @Produce json
// @Success 200 {object} location.PickerView
// @Router /map [get]
func (h *Handler) GetMap(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Snapshot().Map)
}

// GetDisplay
// @Summary Rendered display
// @Description Hero summary, air conditions and forecast cards for the current state.
// @Tags state
// @Produce json
// @Success 200 {object} display.View
// @Router /display [get]
func (h *Handler) GetDisplay(c *gin.Context) {
	st := h.session.Snapshot().State
	c.JSON(http.StatusOK, display.Build(st, h.now()))
}

// acquisitionContext keeps request values but not its cancellation, so a
// client hanging up does not turn the shared state into a transport error.
func acquisitionContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
