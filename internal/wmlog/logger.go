// Package wmlog provides the leveled, channel based logger of the window
// manager.
//
// Every subsystem logs on a named channel (wm.events, wm.handlers, ...).
// Channels are filtered by level and by an optional set of enabled channel
// patterns, so tracing a single subsystem at Debug stays readable.
package wmlog

import (
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"strings"
	"sync"
	"time"
)

// Channel names used across the window manager.
const (
	ChannelEvents    = "wm.events"
	ChannelHandlers  = "wm.handlers"
	ChannelKeymap    = "wm.keymap"
	ChannelMsgbusPub = "wm.msgbus.pub"
	ChannelMsgbusSub = "wm.msgbus.sub"
	ChannelOperators = "wm.operators"
	ChannelDebug     = "wm.debug"
	ChannelConfig    = "wm.config"
	ChannelJournal   = "wm.journal"
	ChannelPlatform  = "wm.platform"
	ChannelScript    = "wm.script"
	ChannelWindowMgr = "wm"
)

// Level represents the severity level of a log message.
type Level int

const (
	// LevelDebug is for detailed tracing.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for recoverable problems and consistency warnings.
	LevelWarn
	// LevelError is for failures.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level. Unknown strings yield LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Config configures a logger.
type Config struct {
	// Level is the minimum level to output.
	Level Level
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
	// Channels restricts Debug and Info output to channels matching one of
	// these patterns ("wm.msgbus.*"). Warn and Error always pass. Empty
	// means every channel.
	Channels []string
	// Now returns the timestamp of a line. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
		Prefix: "wm",
	}
}

// sink is shared by a logger and every logger derived from it.
type sink struct {
	mu       sync.Mutex
	level    Level
	output   io.Writer
	channels []string
	now      func() time.Time
	disabled bool
}

// Logger writes leveled log lines. Derived loggers share level, output and
// channel filters with their parent.
type Logger struct {
	sink    *sink
	prefix  string
	channel string
	fields  map[string]any
}

// New creates a logger with the given configuration.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Logger{
		sink: &sink{
			level:    cfg.Level,
			output:   cfg.Output,
			channels: slices.Clone(cfg.Channels),
			now:      cfg.Now,
		},
		prefix: cfg.Prefix,
		fields: make(map[string]any),
	}
}

// Channel returns a logger writing on the named channel.
func (l *Logger) Channel(name string) *Logger {
	c := l.clone()
	c.channel = name
	return c
}

// ChannelName returns the logger channel.
func (l *Logger) ChannelName() string {
	return l.channel
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	c := l.clone()
	c.fields[key] = value
	return c
}

// WithFields returns a new logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	c := l.clone()
	for k, v := range fields {
		c.fields[k] = v
	}
	return c
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

func (l *Logger) clone() *Logger {
	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	return &Logger{sink: l.sink, prefix: l.prefix, channel: l.channel, fields: fields}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

// SetChannels replaces the enabled channel patterns.
func (l *Logger) SetChannels(patterns []string) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.channels = slices.Clone(patterns)
}

// SetOutput sets the output writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.output = w
}

// Disable disables all logging.
func (l *Logger) Disable() {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.disabled = true
}

// Enabled reports whether a message at level would be written. Callers use
// it to skip building expensive debug output.
func (l *Logger) Enabled(level Level) bool {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.enabledLocked(level)
}

func (l *Logger) enabledLocked(level Level) bool {
	s := l.sink
	if s.disabled || level < s.level {
		return false
	}
	if level >= LevelWarn || len(s.channels) == 0 || l.channel == "" {
		return true
	}
	for _, pattern := range s.channels {
		if matchChannel(pattern, l.channel) {
			return true
		}
	}
	return false
}

// matchChannel matches dotted channel names against a pattern where "*"
// stands for one component and a trailing ".*" also matches the prefix
// itself.
func matchChannel(pattern, channel string) bool {
	if pattern == channel || pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, ".*") && strings.HasPrefix(channel, strings.TrimSuffix(pattern, "*")) {
		return true
	}
	p := strings.ReplaceAll(pattern, ".", "/")
	c := strings.ReplaceAll(channel, ".", "/")
	ok, _ := path.Match(p, c)
	return ok
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LevelError, msg, args...)
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if l == nil || l.sink == nil {
		return
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if !l.enabledLocked(level) {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	b.WriteString(l.sink.now().Format("2006-01-02T15:04:05.000"))
	fmt.Fprintf(&b, " [%s]", level)
	if l.prefix != "" {
		b.WriteByte(' ')
		b.WriteString(l.prefix)
	}
	if l.channel != "" {
		fmt.Fprintf(&b, " (%s)", l.channel)
	}
	b.WriteString(": ")
	b.WriteString(msg)

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		b.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, l.fields[k])
		}
		b.WriteByte('}')
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.sink.output, b.String())
}

// Null returns a logger that discards all output.
func Null() *Logger {
	l := New(Config{Output: io.Discard})
	l.Disable()
	return l
}

var (
	defaultLogger     *Logger
	defaultLoggerOnce sync.Once
)

// Default returns the process-wide logger, creating it on first use.
func Default() *Logger {
	defaultLoggerOnce.Do(func() {
		if defaultLogger == nil {
			defaultLogger = New(DefaultConfig())
		}
	})
	return defaultLogger
}

// SetDefault sets the process-wide logger.
// Should be called early in startup, before Default is first used.
func SetDefault(l *Logger) {
	defaultLogger = l
}
