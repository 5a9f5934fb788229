package keymap

import (
	"errors"
	"fmt"
)

// Keymap errors.
var (
	ErrInvalidTrigger = errors.New("invalid trigger")
	ErrInvalidItem    = errors.New("invalid keymap item")
	ErrNotFound       = errors.New("keymap not found")
	ErrNilKeymap      = errors.New("nil keymap")
)

// ParseError reports a problem in a keymap file.
type ParseError struct {
	Source string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
