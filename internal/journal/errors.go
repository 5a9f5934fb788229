package journal

import "errors"

var (
	// ErrClosed is returned when the journal has been closed.
	ErrClosed = errors.New("journal is closed")

	// ErrSessionNotFound is returned when replaying an unknown session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnknownPayload is returned when a stored payload kind is not known.
	ErrUnknownPayload = errors.New("unknown payload kind")
)
