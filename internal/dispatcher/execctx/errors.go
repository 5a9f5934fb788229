package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingPrefs indicates preferences are required but not set.
	ErrMissingPrefs = errors.New("execution context: preferences are required")

	// ErrMissingLogger indicates the logger is required but not set.
	ErrMissingLogger = errors.New("execution context: logger is required")

	// ErrMissingMetrics indicates metrics are required but not set.
	ErrMissingMetrics = errors.New("execution context: metrics are required")
)
