package operator

import "errors"

// Operator errors.
var (
	ErrInvalidType = errors.New("operator: invalid type")
	ErrDuplicate   = errors.New("operator: duplicate id")
	ErrNotFound    = errors.New("operator: not found")
)
