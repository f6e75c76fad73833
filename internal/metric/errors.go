package metric

import "errors"

var (
	// ErrNonFinite marks a parameter that is NaN or infinite.
	ErrNonFinite = errors.New("metric: parameter is not finite")

	ErrUnknownMode = errors.New("metric: unknown mode")
	ErrUnknownView = errors.New("metric: unknown view")
)
