package weather

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an acquisition cycle failed.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindUpstream      ErrorKind = "upstream"
	KindTransport     ErrorKind = "transport"
)

const (
	msgConfiguration    = "configuration invalid"
	msgUpstreamFallback = "Failed to fetch weather data."
	msgNetwork          = "Network error. Could not connect to service."
)

var ErrConfiguration = errors.New(msgConfiguration)

// UpstreamError is returned when a payload arrives but its success marker is wrong.
type UpstreamError struct {
	Endpoint string
	Code     string
	Message  string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s endpoint returned code %s: %s", e.Endpoint, e.Code, e.Message)
}

// TransportError covers everything that prevents reading a payload at all.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s endpoint unreachable: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// KindOf maps any error to its kind. Unknown errors count as transport failures.
func KindOf(err error) ErrorKind {
	var upstream *UpstreamError
	switch {
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.As(err, &upstream):
		return KindUpstream
	default:
		return KindTransport
	}
}

// cycleFailure picks the kind and user-visible message for a failed join.
// A transport failure on either side wins; otherwise the API's own text is preferred.
func cycleFailure(currentErr, forecastErr error) (ErrorKind, string) {
	for _, err := range []error{currentErr, forecastErr} {
		if err != nil && KindOf(err) == KindTransport {
			return KindTransport, msgNetwork
		}
	}

	for _, err := range []error{currentErr, forecastErr} {
		var upstream *UpstreamError
		if errors.As(err, &upstream) && upstream.Message != "" {
			return KindUpstream, upstream.Message
		}
	}
	return KindUpstream, msgUpstreamFallback
}
