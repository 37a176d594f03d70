package domain

import "errors"

var (
	// ErrUnknownEvent indicates that an event type name is not part of the closed event set.
	ErrUnknownEvent = errors.New("unknown event type")

	// ErrNegativeDelta indicates a Tick with a negative elapsed time.
	ErrNegativeDelta = errors.New("tick delta must be >= 0ms")

	// ErrUnknownSound indicates a sound name outside the fixed sound set.
	ErrUnknownSound = errors.New("unknown sound")
)
