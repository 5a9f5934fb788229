package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNilKeyConfig indicates a dispatcher was created without keymaps.
	ErrNilKeyConfig = errors.New("dispatcher: nil key configuration")

	// ErrNilOperators indicates a dispatcher was created without operators.
	ErrNilOperators = errors.New("dispatcher: nil operator registry")

	// ErrPollFailed indicates Call found the operator but its poll failed.
	ErrPollFailed = errors.New("dispatcher: operator poll failed")

	// ErrPanic indicates an operator panicked.
	ErrPanic = errors.New("dispatcher: operator panic")
)
