package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Load reads preferences from a TOML file on top of the defaults. A missing
// file is not an error; the defaults are returned.
func Load(path string) (*Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading preferences %s: %w", path, err)
	}
	return Parse(path, data)
}

// LoadFromReader reads preferences from r on top of the defaults.
func LoadFromReader(r io.Reader) (*Prefs, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	return Parse("<reader>", data)
}

// Parse decodes TOML data on top of the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(source string, data []byte) (*Prefs, error) {
	p := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, newParseError(source, err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return p, nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		pe.Line, pe.Column = decErr.Position()
		return pe
	}

	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		first := strictErr.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = "unknown key " + strings.Join(first.Key(), ".")
	}
	return pe
}

// envOverrides maps environment variables to setters.
var envOverrides = map[string]func(p *Prefs, v string) error{
	"WMEVENT_LOG_LEVEL": func(p *Prefs, v string) error {
		p.Log.Level = v
		return nil
	},
	"WMEVENT_LOG_CHANNELS": func(p *Prefs, v string) error {
		p.Log.Channels = strings.Split(v, ",")
		return nil
	},
	"WMEVENT_DOUBLE_CLICK_TIME_MS": func(p *Prefs, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		p.Input.DoubleClickTimeMS = n
		return nil
	},
	"WMEVENT_TWO_BUTTON_MOUSE": func(p *Prefs, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		p.Input.TwoButtonMouse = b
		return nil
	},
	"WMEVENT_NUMPAD_EMULATION": func(p *Prefs, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		p.Input.NumpadEmulation = b
		return nil
	},
}

// ApplyEnv overrides preferences from environment variables looked up with
// lookup (os.LookupEnv in production) and revalidates.
func ApplyEnv(p *Prefs, lookup func(string) (string, bool)) error {
	for name, set := range envOverrides {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(p, strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return p.Validate()
}
