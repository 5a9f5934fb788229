package app

import (
	"io"
	"os"

	"github.com/dshills/wmevent/internal/config"
	"github.com/dshills/wmevent/internal/wmlog"
)

// newLogger builds the root logger from the preferences. A level given on
// the command line wins over the preferences.
func newLogger(p *config.Prefs, opts Options) (*wmlog.Logger, io.Closer, error) {
	cfg := wmlog.DefaultConfig()
	cfg.Level = p.LogLevel()
	if opts.LogLevel != "" {
		cfg.Level = wmlog.ParseLevel(opts.LogLevel)
	}
	cfg.Channels = p.Log.Channels

	var closer io.Closer
	if opts.LogPath != "" {
		f, err := os.OpenFile(opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		cfg.Output = f
		closer = f
	}
	return wmlog.New(cfg), closer, nil
}

// applyLogPrefs updates a running logger after a preferences reload.
func applyLogPrefs(l *wmlog.Logger, p *config.Prefs, opts Options) {
	if opts.LogLevel == "" {
		l.SetLevel(p.LogLevel())
	}
	l.SetChannels(p.Log.Channels)
}
