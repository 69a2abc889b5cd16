package messaging

import (
	"time"

	"github.com/Nazarious-ucu/weather-display/internal/models"
)

// StateChangedEvent is the wire form of an applied acquisition transition.
type StateChangedEvent struct {
	Status      string             `json:"status"`
	Generation  uint64             `json:"generation"`
	Latitude    *float64           `json:"latitude,omitempty"`
	Longitude   *float64           `json:"longitude,omitempty"`
	City        string             `json:"city,omitempty"`
	Temperature *float64           `json:"temperature,omitempty"`
	Condition   string             `json:"condition,omitempty"`
	Entries     int                `json:"forecast_entries"`
	Error       *models.StateError `json:"error,omitempty"`
	Map         models.MapRegion   `json:"map"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

func NewStateChangedEvent(ev models.StateEvent) StateChangedEvent {
	s := ev.State
	out := StateChangedEvent{
		Status:     string(s.Status),
		Generation: s.Generation,
		Error:      s.Error,
		Map:        ev.Map,
		OccurredAt: s.UpdatedAt,
	}
	if s.Coordinate != nil {
		lat, lon := s.Coordinate.Latitude, s.Coordinate.Longitude
		out.Latitude, out.Longitude = &lat, &lon
	}
	if s.Conditions != nil {
		temp := s.Conditions.Temperature
		out.City = s.Conditions.City
		out.Temperature = &temp
		out.Condition = string(s.Conditions.Condition)
	}
	if s.Forecast != nil {
		out.Entries = len(s.Forecast.Entries)
	}
	return out
}
