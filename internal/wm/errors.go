package wm

import "errors"

var (
	// ErrWindowNotFound is returned for an unknown window ID.
	ErrWindowNotFound = errors.New("window not found")

	// ErrKeymapNotFound is returned when a keymap name is not in the key
	// configuration.
	ErrKeymapNotFound = errors.New("keymap not found")

	// ErrNotModal is returned by AddModalOperator for operator types
	// without a modal callback.
	ErrNotModal = errors.New("operator has no modal callback")

	// ErrInvalidSize is returned for windows without a positive size.
	ErrInvalidSize = errors.New("invalid window size")
)
