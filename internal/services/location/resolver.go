package location

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-display/internal/models"
)

type permissionRequester interface {
	RequestForeground(ctx context.Context) (PermissionStatus, error)
}

type positionSource interface {
	CurrentPosition(ctx context.Context) (models.Coordinate, error)
}

// Resolver produces at most one committed coordinate per action, from the
// device, from a confirmed map pick, or from the configured default.
type Resolver struct {
	permission permissionRequester
	position   positionSource
	picker     *Picker
	fallback   models.Coordinate
	logger     zerolog.Logger

	mu        sync.RWMutex
	committed *models.Coordinate
}

func NewResolver(
	permission permissionRequester,
	position positionSource,
	picker *Picker,
	fallback models.Coordinate,
	logger zerolog.Logger,
) *Resolver {
	return &Resolver{
		permission: permission,
		position:   position,
		picker:     picker,
		fallback:   fallback,
		logger:     logger.With().Str("component", "LocationResolver").Logger(),
	}
}

// FromDevice asks for permission and a position fix on every call.
//
// A denied permission returns ErrPermissionDenied and no coordinate. A failed
// fix returns the default coordinate, committed, together with
// ErrLocationUnavailable.
func (r *Resolver) FromDevice(ctx context.Context) (models.Coordinate, error) {
	status, err := r.permission.RequestForeground(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("permission request failed")
		return r.commit(r.fallback), ErrLocationUnavailable
	}
	if status != PermissionGranted {
		r.logger.Warn().Str("status", string(status)).Msg("foreground location permission not granted")
		return models.Coordinate{}, ErrPermissionDenied
	}

	c, err := r.position.CurrentPosition(ctx)
	if err != nil {
		r.logger.Error().
			Err(err).
			Stringer("fallback", r.fallback).
			Msg("could not get current position, using default")
		return r.commit(r.fallback), ErrLocationUnavailable
	}

	r.logger.Info().Stringer("coordinate", c).Msg("device position resolved")
	return r.commit(c), nil
}

// FromMap stores a tapped point as the pending selection. It commits nothing.
func (r *Resolver) FromMap(c models.Coordinate) PickerView {
	return r.picker.Tap(c)
}

// ConfirmMapSelection commits the pending selection and clears it.
func (r *Resolver) ConfirmMapSelection() (models.Coordinate, error) {
	c, ok := r.picker.Take()
	if !ok {
		return models.Coordinate{}, ErrNoSelection
	}
	r.logger.Info().Stringer("coordinate", c).Msg("map selection confirmed")
	return r.commit(c), nil
}

func (r *Resolver) DefaultCoordinate() models.Coordinate {
	return r.fallback
}

// Committed returns the last coordinate handed out for fetching.
func (r *Resolver) Committed() (models.Coordinate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.committed == nil {
		return models.Coordinate{}, false
	}
	return *r.committed, true
}

func (r *Resolver) commit(c models.Coordinate) models.Coordinate {
	r.mu.Lock()
	r.committed = &c
	r.mu.Unlock()
	return c
}
