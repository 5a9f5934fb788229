package keymap

import (
	"github.com/dshills/wmevent/internal/screen"
)

// KeyConfig is an ordered set of keymaps. A keymap is identified by its
// name, space type and region type.
type KeyConfig struct {
	Name    string
	keymaps []*Keymap
}

// NewKeyConfig creates an empty key configuration.
func NewKeyConfig(name string) *KeyConfig {
	return &KeyConfig{Name: name}
}

// Add registers km. A keymap with the same identity is replaced in place.
func (kc *KeyConfig) Add(km *Keymap) error {
	if km == nil {
		return ErrNilKeymap
	}
	if err := km.Validate(); err != nil {
		return err
	}
	for i, existing := range kc.keymaps {
		if sameIdentity(existing, km) {
			kc.keymaps[i] = km
			return nil
		}
	}
	kc.keymaps = append(kc.keymaps, km)
	return nil
}

// Ensure returns the keymap with the given identity, creating an empty one
// when missing.
func (kc *KeyConfig) Ensure(name string, space screen.SpaceType, region screen.RegionType) *Keymap {
	if km := kc.Find(name, space, region); km != nil {
		return km
	}
	km := NewKeymap(name, space, region)
	kc.keymaps = append(kc.keymaps, km)
	return km
}

// Find returns the keymap with exactly this identity.
func (kc *KeyConfig) Find(name string, space screen.SpaceType, region screen.RegionType) *Keymap {
	for _, km := range kc.keymaps {
		if km.Name == name && km.SpaceType == space && km.RegionType == region {
			return km
		}
	}
	return nil
}

// Lookup returns the keymap named name for the region type, preferring
// the variant bound to space over the one bound to every space, and a
// keymap bound to the region type over one bound to every region.
func (kc *KeyConfig) Lookup(name string, space screen.SpaceType, region screen.RegionType) *Keymap {
	for _, r := range []screen.RegionType{region, screen.RegionAny} {
		if km := kc.Find(name, space, r); km != nil {
			return km
		}
		if space != screen.SpaceEmpty {
			if km := kc.Find(name, screen.SpaceEmpty, r); km != nil {
				return km
			}
		}
		if region == screen.RegionAny {
			break
		}
	}
	return nil
}

// LookupName returns the first keymap named name, whatever its space.
func (kc *KeyConfig) LookupName(name string) *Keymap {
	for _, km := range kc.keymaps {
		if km.Name == name {
			return km
		}
	}
	return nil
}

// Remove deletes the keymap with this identity.
func (kc *KeyConfig) Remove(name string, space screen.SpaceType, region screen.RegionType) bool {
	for i, km := range kc.keymaps {
		if km.Name == name && km.SpaceType == space && km.RegionType == region {
			kc.keymaps = append(kc.keymaps[:i], kc.keymaps[i+1:]...)
			return true
		}
	}
	return false
}

// Keymaps returns the keymaps in registration order.
func (kc *KeyConfig) Keymaps() []*Keymap {
	out := make([]*Keymap, len(kc.keymaps))
	copy(out, kc.keymaps)
	return out
}

// Len returns the number of keymaps.
func (kc *KeyConfig) Len() int {
	return len(kc.keymaps)
}

// Merge adds a copy of every keymap of other, replacing keymaps with the
// same identity. Items of merged keymaps are marked user modified.
func (kc *KeyConfig) Merge(other *KeyConfig) error {
	for _, km := range other.keymaps {
		c := km.Clone()
		for _, it := range c.Items {
			it.Flags |= ItemUserModified
		}
		if err := kc.Add(c); err != nil {
			return err
		}
	}
	return nil
}

func sameIdentity(a, b *Keymap) bool {
	return a.Name == b.Name && a.SpaceType == b.SpaceType && a.RegionType == b.RegionType
}
