package script

import "errors"

// Script errors.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrEmptyExpression is returned when compiling an empty poll.
	ErrEmptyExpression = errors.New("empty poll expression")

	// ErrCompile wraps Lua syntax errors.
	ErrCompile = errors.New("lua compile error")
)
