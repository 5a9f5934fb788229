package msgbus

import "errors"

var (
	// ErrNilNotify is returned when a value has no callback.
	ErrNilNotify = errors.New("subscription has no notify callback")

	// ErrInvalidTopic is returned for empty or malformed static topics.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidParams is returned for a property key with nothing set.
	ErrInvalidParams = errors.New("invalid message params")
)
