package location

import "errors"

var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrLocationUnavailable = errors.New("device location unavailable")
	ErrNoSelection         = errors.New("no map selection pending")
)
