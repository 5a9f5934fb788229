package keymap

import (
	"fmt"

	"github.com/dshills/wmevent/internal/dispatcher/execctx"
	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/screen"
)

// PollFunc reports whether a keymap applies in the current context.
type PollFunc func(ctx *execctx.Context) bool

// Keymap holds the items of one editor context.
type Keymap struct {
	// Name is the keymap identifier, shared by the variants of a keymap
	// bound to different spaces.
	Name string

	// SpaceType and RegionType restrict where the keymap is found.
	SpaceType  screen.SpaceType
	RegionType screen.RegionType

	Items []*Item

	// Poll, when set, must pass before any item is tested. PollExpr is its
	// source when loaded from a file.
	Poll     PollFunc
	PollExpr string

	// Modal keymaps map events to modal values of a running operator.
	Modal bool

	// Source indicates where this keymap was defined.
	// Examples: "default", "user", "addon:measure"
	Source string

	nextID int
}

// NewKeymap creates a new keymap.
func NewKeymap(name string, space screen.SpaceType, region screen.RegionType) *Keymap {
	return &Keymap{Name: name, SpaceType: space, RegionType: region}
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// WithPoll sets the poll function for this keymap.
func (k *Keymap) WithPoll(poll PollFunc) *Keymap {
	k.Poll = poll
	return k
}

// Add appends an item, assigning its ID.
func (k *Keymap) Add(it *Item) *Item {
	k.nextID++
	it.ID = k.nextID
	k.Items = append(k.Items, it)
	return it
}

// AddItem parses trigger and appends an item invoking operator.
func (k *Keymap) AddItem(trigger, operator string) (*Item, error) {
	it, err := NewItem(trigger, operator)
	if err != nil {
		return nil, err
	}
	return k.Add(it), nil
}

// AddModal parses trigger and appends a modal item.
func (k *Keymap) AddModal(trigger, value string) (*Item, error) {
	it, err := ParseTrigger(trigger)
	if err != nil {
		return nil, err
	}
	it.ModalValue = value
	return k.Add(it), nil
}

// Remove deletes the item with the given ID.
func (k *Keymap) Remove(id int) bool {
	for i, it := range k.Items {
		if it.ID == id {
			k.Items = append(k.Items[:i], k.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Item returns the item with the given ID.
func (k *Keymap) Item(id int) *Item {
	for _, it := range k.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Polls reports whether the keymap applies in ctx.
func (k *Keymap) Polls(ctx *execctx.Context) bool {
	return k.Poll == nil || k.Poll(ctx)
}

// Match returns the active items matching ev, in keymap order.
func (k *Keymap) Match(ev *event.Event) []*Item {
	var out []*Item
	for _, it := range k.Items {
		if it.Matches(ev) {
			out = append(out, it)
		}
	}
	return out
}

// ModalValue returns the modal value of the first item matching ev.
func (k *Keymap) ModalValue(ev *event.Event) (string, bool) {
	for _, it := range k.Items {
		if it.ModalValue != "" && it.Matches(ev) {
			return it.ModalValue, true
		}
	}
	return "", false
}

// Validate checks that every item can fire.
func (k *Keymap) Validate() error {
	for _, it := range k.Items {
		if k.Modal && it.ModalValue == "" {
			return fmt.Errorf("%w: keymap %q item %d has no modal value", ErrInvalidItem, k.Name, it.ID)
		}
		if !k.Modal && it.Operator == "" {
			return fmt.Errorf("%w: keymap %q item %d has no operator", ErrInvalidItem, k.Name, it.ID)
		}
		if it.Type == 0 {
			return fmt.Errorf("%w: keymap %q item %d has no type", ErrInvalidItem, k.Name, it.ID)
		}
	}
	return nil
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	c := *k
	c.Items = make([]*Item, len(k.Items))
	for i, it := range k.Items {
		c.Items[i] = it.Clone()
	}
	return &c
}

func (k *Keymap) String() string {
	return fmt.Sprintf("%s [%s/%s]", k.Name, spaceName(k.SpaceType), regionName(k.RegionType))
}

func spaceName(s screen.SpaceType) string {
	if s == screen.SpaceEmpty {
		return "EMPTY"
	}
	return string(s)
}

func regionName(r screen.RegionType) string {
	if r == screen.RegionAny {
		return "ANY"
	}
	return string(r)
}
