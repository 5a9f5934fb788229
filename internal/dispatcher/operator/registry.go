package operator

import (
	"fmt"
	"slices"
)

// Registry holds operator types by ID. It is not safe for concurrent use;
// operators are registered at startup.
type Registry struct {
	types map[string]*Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Register adds t. IDs must be unique.
func (r *Registry) Register(t *Type) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", ErrInvalidType)
	}
	if err := t.validate(); err != nil {
		return err
	}
	if _, ok := r.types[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, t.ID)
	}
	r.types[t.ID] = t
	return nil
}

// MustRegister registers t and panics on error.
func (r *Registry) MustRegister(t *Type) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Unregister removes the type with id.
func (r *Registry) Unregister(id string) bool {
	if _, ok := r.types[id]; !ok {
		return false
	}
	delete(r.types, id)
	return true
}

// Get returns the type with id.
func (r *Registry) Get(id string) (*Type, bool) {
	t, ok := r.types[id]
	return t, ok
}

// IDs returns the registered IDs in sorted order, internal ones excluded.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.types))
	for id, t := range r.types {
		if t.Flags&FlagInternal == 0 {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.types)
}
