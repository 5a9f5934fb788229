package rna

import (
	"fmt"

	"github.com/google/uuid"
)

// ChangeFunc is called after a property write.
type ChangeFunc func(p Pointer, prop string)

// Store owns documents by ID. It is owned by the main loop and not safe for
// concurrent use.
type Store struct {
	docs     map[uuid.UUID]*Document
	onChange ChangeFunc
}

var _ Resolver = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[uuid.UUID]*Document)}
}

// OnChange sets the callback run after every Set.
func (s *Store) OnChange(fn ChangeFunc) {
	s.onChange = fn
}

// Create adds a new document.
func (s *Store) Create(typ string, raw []byte) (*Document, error) {
	d, err := NewDocument(typ, raw)
	if err != nil {
		return nil, err
	}
	s.docs[d.ID] = d
	return d, nil
}

// Get returns a document by ID.
func (s *Store) Get(id uuid.UUID) (*Document, bool) {
	d, ok := s.docs[id]
	return d, ok
}

// Remove deletes a document.
func (s *Store) Remove(id uuid.UUID) bool {
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	return true
}

// Reload replaces a document with a new one of the same type built from
// raw. The new document gets a new ID; the old one is removed.
func (s *Store) Reload(old uuid.UUID, raw []byte) (*Document, error) {
	prev, ok := s.docs[old]
	if !ok {
		return nil, fmt.Errorf("reload %s: %w", old, ErrNotFound)
	}
	d, err := NewDocument(prev.Type, raw)
	if err != nil {
		return nil, err
	}
	delete(s.docs, old)
	s.docs[d.ID] = d
	return d, nil
}

// Len returns the number of documents.
func (s *Store) Len() int {
	return len(s.docs)
}

// Resolve implements Resolver.
func (s *Store) Resolve(owner uuid.UUID, path string) (Pointer, bool) {
	d, ok := s.docs[owner]
	if !ok {
		return Pointer{}, false
	}
	return d.Resolve(path)
}

// HasProperty implements Resolver.
func (s *Store) HasProperty(p Pointer, prop string) bool {
	d, ok := s.docs[p.Owner]
	if !ok {
		return false
	}
	return d.HasProperty(p, prop)
}

// Set writes a property and reports the change.
func (s *Store) Set(p Pointer, prop string, value any) error {
	d, ok := s.docs[p.Owner]
	if !ok {
		return fmt.Errorf("set %s: %w", p, ErrNotFound)
	}
	if err := d.Set(p, prop, value); err != nil {
		return err
	}
	if s.onChange != nil {
		s.onChange(p, prop)
	}
	return nil
}
