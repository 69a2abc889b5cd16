package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-display/internal/models"
	"github.com/Nazarious-ucu/weather-display/internal/services/location"
)

const (
	NoticePermissionDenied    = "permission_denied"
	NoticeLocationUnavailable = "location_unavailable"
	NoticeNoSelection         = "no_selection"
)

var (
	noticePermissionDenied = models.Notice{
		Kind:    NoticePermissionDenied,
		Title:   "Location Denied",
		Message: "Please enable location access to see local weather.",
	}
	noticeLocationUnavailable = models.Notice{
		Kind:    NoticeLocationUnavailable,
		Title:   "Error",
		Message: "Could not get your current location.",
	}
	noticeNoSelection = models.Notice{
		Kind:    NoticeNoSelection,
		Title:   "Select Location",
		Message: "Please tap on the map to select a location first.",
	}
)

type resolver interface {
	FromDevice(ctx context.Context) (models.Coordinate, error)
	FromMap(c models.Coordinate) location.PickerView
	ConfirmMapSelection() (models.Coordinate, error)
	Committed() (models.Coordinate, bool)
}

type picker interface {
	Toggle() location.PickerView
	View() location.PickerView
}

type acquirer interface {
	Acquire(ctx context.Context, coord models.Coordinate) models.AcquisitionState
	State() models.AcquisitionState
}

// Outcome is what a trigger produced. Notice is set when the user has to be
// told something; Acquired reports whether a fetch cycle ran.
type Outcome struct {
	State    models.AcquisitionState `json:"state"`
	Map      location.PickerView     `json:"map"`
	Notice   *models.Notice          `json:"notice,omitempty"`
	Acquired bool                    `json:"acquired"`
}

// Session maps the inbound trigger surfaces onto the resolver and the
// acquisition controller.
type Session struct {
	resolver   resolver
	picker     picker
	controller acquirer
	logger     zerolog.Logger
}

func NewSession(r resolver, p picker, c acquirer, logger zerolog.Logger) *Session {
	return &Session{
		resolver:   r,
		picker:     p,
		controller: c,
		logger:     logger.With().Str("component", "Session").Logger(),
	}
}

// Startup runs the same flow as UseCurrentLocation.
func (s *Session) Startup(ctx context.Context) Outcome {
	s.logger.Info().Msg("startup acquisition")
	return s.UseCurrentLocation(ctx)
}

func (s *Session) UseCurrentLocation(ctx context.Context) Outcome {
	coord, err := s.resolver.FromDevice(ctx)
	switch {
	case errors.Is(err, location.ErrPermissionDenied):
		return s.notice(noticePermissionDenied)
	case errors.Is(err, location.ErrLocationUnavailable):
		out := s.acquire(ctx, coord)
		n := noticeLocationUnavailable
		out.Notice = &n
		return out
	case err != nil:
		s.logger.Error().Err(err).Msg("unexpected resolver error")
		return s.notice(noticeLocationUnavailable)
	}
	return s.acquire(ctx, coord)
}

func (s *Session) ToggleMap() location.PickerView {
	return s.picker.Toggle()
}

func (s *Session) TapMap(c models.Coordinate) location.PickerView {
	return s.resolver.FromMap(c)
}

func (s *Session) ConfirmMap(ctx context.Context) Outcome {
	coord, err := s.resolver.ConfirmMapSelection()
	if err != nil {
		return s.notice(noticeNoSelection)
	}
	return s.acquire(ctx, coord)
}

// Refresh re-acquires the committed coordinate. It does nothing before the
// first commit.
func (s *Session) Refresh(ctx context.Context) (Outcome, bool) {
	coord, ok := s.resolver.Committed()
	if !ok {
		return s.snapshot(), false
	}
	return s.acquire(ctx, coord), true
}

func (s *Session) Snapshot() Outcome {
	return s.snapshot()
}

func (s *Session) acquire(ctx context.Context, coord models.Coordinate) Outcome {
	st := s.controller.Acquire(ctx, coord)
	return Outcome{State: st, Map: s.picker.View(), Acquired: true}
}

func (s *Session) notice(n models.Notice) Outcome {
	s.logger.Warn().Str("notice", n.Kind).Msg(n.Message)
	out := s.snapshot()
	out.Notice = &n
	return out
}

func (s *Session) snapshot() Outcome {
	return Outcome{State: s.controller.State(), Map: s.picker.View()}
}
