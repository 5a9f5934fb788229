package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// RecoverFromPanic wraps operator callbacks in panic recovery. A
	// panicking operator is logged and treated as cancelled.
	RecoverFromPanic bool

	// HistorySize is the number of dispatched operators kept by Stats.
	HistorySize int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RecoverFromPanic: true,
		HistorySize:      16,
	}
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithHistorySize returns a copy of the config with the history size set.
func (c Config) WithHistorySize(n int) Config {
	c.HistorySize = n
	return c
}
