package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dshills/wmevent/internal/screen"
)

// PollCompiler turns a poll expression from a keymap file into a PollFunc.
type PollCompiler interface {
	CompilePoll(name, expr string) (PollFunc, error)
}

// Loader loads keymaps from YAML files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string
	polls       PollCompiler
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPollCompiler compiles keymap poll expressions. Without one, a keymap
// with a poll expression fails to load.
func WithPollCompiler(c PollCompiler) LoaderOption {
	return func(l *Loader) { l.polls = c }
}

// NewLoader creates a new keymap loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads the keymaps of a YAML file.
func (l *Loader) LoadFile(path string) (*KeyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	return l.Parse(path, data)
}

// LoadReader loads keymaps from a reader.
func (l *Loader) LoadReader(source string, r io.Reader) (*KeyConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}
	return l.Parse(source, data)
}

// Parse decodes a keymap document.
func (l *Loader) Parse(source string, data []byte) (*KeyConfig, error) {
	var doc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewKeyConfig(source), nil
		}
		return nil, &ParseError{Source: source, Err: err}
	}

	kc := NewKeyConfig(doc.Name)
	if kc.Name == "" {
		kc.Name = source
	}
	for _, kmc := range doc.Keymaps {
		km, err := l.build(source, kmc)
		if err != nil {
			return nil, err
		}
		if err := kc.Add(km); err != nil {
			return nil, &ParseError{Source: source, Line: kmc.line, Err: err}
		}
	}
	return kc, nil
}

func (l *Loader) build(source string, kmc keymapConfig) (*Keymap, error) {
	if kmc.Name == "" {
		return nil, &ParseError{Source: source, Line: kmc.line, Err: fmt.Errorf("%w: keymap without a name", ErrInvalidItem)}
	}
	km := NewKeymap(kmc.Name, screen.SpaceType(kmc.Space), screen.RegionType(kmc.Region))
	km.Modal = kmc.Modal
	km.Source = source

	if kmc.Poll != "" {
		if l.polls == nil {
			return nil, &ParseError{Source: source, Line: kmc.line, Err: fmt.Errorf("keymap %q: poll expressions are not supported", kmc.Name)}
		}
		poll, err := l.polls.CompilePoll(kmc.Name, kmc.Poll)
		if err != nil {
			return nil, &ParseError{Source: source, Line: kmc.line, Err: err}
		}
		km.Poll = poll
		km.PollExpr = kmc.Poll
	}

	for _, ic := range kmc.Items {
		it, err := ParseTrigger(ic.Trigger)
		if err != nil {
			return nil, &ParseError{Source: source, Line: ic.line, Err: err}
		}
		it.Operator = ic.Operator
		it.ModalValue = ic.Modal
		it.Properties = ic.Properties
		if ic.Inactive {
			it.Flags |= ItemInactive
		}
		if ic.IgnoreRepeat {
			it.Flags |= ItemRepeatIgnore
		}
		km.Add(it)
	}
	return km, nil
}

// LoadAll loads every *.yaml and *.yml file of the search paths into one
// key configuration, later files replacing keymaps of earlier ones.
func (l *Loader) LoadAll() (*KeyConfig, error) {
	all := NewKeyConfig("user")
	var errs []error
	for _, dir := range l.searchPaths {
		var matches []string
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			m, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				continue
			}
			matches = append(matches, m...)
		}
		for _, path := range matches {
			kc, err := l.LoadFile(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if err := all.Merge(kc); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return all, errors.Join(errs...)
}

// fileConfig is the YAML structure for keymap files.
type fileConfig struct {
	Name    string         `yaml:"name"`
	Keymaps []keymapConfig `yaml:"keymaps"`
}

type keymapConfig struct {
	Name   string       `yaml:"name"`
	Space  string       `yaml:"space"`
	Region string       `yaml:"region"`
	Poll   string       `yaml:"poll"`
	Modal  bool         `yaml:"modal"`
	Items  []itemConfig `yaml:"items"`

	line int
}

func (c *keymapConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain keymapConfig
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = keymapConfig(p)
	c.line = node.Line
	return nil
}

type itemConfig struct {
	Trigger      string         `yaml:"trigger"`
	Operator     string         `yaml:"operator"`
	Modal        string         `yaml:"modal"`
	Properties   map[string]any `yaml:"properties"`
	Inactive     bool           `yaml:"inactive"`
	IgnoreRepeat bool           `yaml:"ignore_repeat"`

	line int
}

func (c *itemConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain itemConfig
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = itemConfig(p)
	c.line = node.Line
	return nil
}
