package lrucache

import "errors"

var (
	// ErrInvalidOptions is returned when [Options] hold a negative limit,
	// expiration or cleanup interval.
	ErrInvalidOptions = errors.New("lrucache: invalid options")

	// ErrParsingOptions is returned when environment variables cannot be
	// parsed into [Options].
	ErrParsingOptions = errors.New("lrucache: failed to parse options from environment")
)
