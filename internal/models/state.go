package models

import "time"

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// AcquisitionState is the single value the presentation layer renders.
// Only the constructors below should be used to build it.
type AcquisitionState struct {
	Status     Status             `json:"status"`
	Generation uint64             `json:"generation"`
	Coordinate *Coordinate        `json:"coordinate,omitempty"`
	Conditions *CurrentConditions `json:"conditions,omitempty"`
	Forecast   *Forecast          `json:"forecast,omitempty"`
	Error      *StateError        `json:"error,omitempty"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// StateError is the user-visible part of a failed cycle.
type StateError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func Idle() AcquisitionState {
	return AcquisitionState{Status: StatusIdle, UpdatedAt: time.Now().UTC()}
}

func Loading(generation uint64, c Coordinate) AcquisitionState {
	return AcquisitionState{
		Status:     StatusLoading,
		Generation: generation,
		Coordinate: &c,
		UpdatedAt:  time.Now().UTC(),
	}
}

func Ready(generation uint64, c Coordinate, cond CurrentConditions, fc Forecast) AcquisitionState {
	return AcquisitionState{
		Status:     StatusReady,
		Generation: generation,
		Coordinate: &c,
		Conditions: &cond,
		Forecast:   &fc,
		UpdatedAt:  time.Now().UTC(),
	}
}

func Failed(generation uint64, c *Coordinate, kind, message string) AcquisitionState {
	return AcquisitionState{
		Status:     StatusError,
		Generation: generation,
		Coordinate: c,
		Error:      &StateError{Kind: kind, Message: message},
		UpdatedAt:  time.Now().UTC(),
	}
}

func (s AcquisitionState) IsSettled() bool {
	return s.Status == StatusReady || s.Status == StatusError
}

// StateEvent is what sinks receive on every applied transition.
type StateEvent struct {
	State AcquisitionState `json:"state"`
	Map   MapRegion        `json:"map"`
}
