package rna

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Document is a JSON object owned by one entity.
type Document struct {
	ID   uuid.UUID
	Type string

	raw []byte
}

// NewDocument creates a document with a fresh ID.
func NewDocument(typ string, raw []byte) (*Document, error) {
	return newDocument(uuid.New(), typ, raw)
}

func newDocument(id uuid.UUID, typ string, raw []byte) (*Document, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, typ)
	}
	buf := make([]byte, len(raw))
	copy(buf, raw)
	return &Document{ID: id, Type: typ, raw: buf}, nil
}

// Raw returns the document body. The slice must not be modified.
func (d *Document) Raw() []byte {
	return d.raw
}

// Pointer returns the pointer to the document itself.
func (d *Document) Pointer() Pointer {
	return Pointer{Owner: d.ID, Type: d.Type}
}

// Resolve returns a pointer to the object at path. Nested objects take their
// type from a "_type" member, else from the last path segment.
func (d *Document) Resolve(path string) (Pointer, bool) {
	if path == "" {
		return d.Pointer(), true
	}
	res := gjson.GetBytes(d.raw, path)
	if !res.Exists() || !res.IsObject() {
		return Pointer{}, false
	}
	typ := res.Get(TypeField).String()
	if typ == "" {
		typ = lastSegment(path)
	}
	return Pointer{Owner: d.ID, Type: typ, Path: path}, true
}

// Get reads a property of the struct at p.
func (d *Document) Get(p Pointer, prop string) gjson.Result {
	return gjson.GetBytes(d.raw, join(p.Path, prop))
}

// HasProperty reports whether the struct at p has prop.
func (d *Document) HasProperty(p Pointer, prop string) bool {
	return d.Get(p, prop).Exists()
}

// Set writes a property of the struct at p.
func (d *Document) Set(p Pointer, prop string, value any) error {
	if !validProperty(prop) {
		return fmt.Errorf("%w: %q", ErrInvalidProperty, prop)
	}
	if !p.IsOwner() && !gjson.GetBytes(d.raw, p.Path).IsObject() {
		return fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	raw, err := sjson.SetBytes(d.raw, join(p.Path, prop), value)
	if err != nil {
		return fmt.Errorf("set %s.%s: %w", p, prop, err)
	}
	d.raw = raw
	return nil
}

// Delete removes a property of the struct at p.
func (d *Document) Delete(p Pointer, prop string) error {
	raw, err := sjson.DeleteBytes(d.raw, join(p.Path, prop))
	if err != nil {
		return fmt.Errorf("delete %s.%s: %w", p, prop, err)
	}
	d.raw = raw
	return nil
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' && (i == 0 || path[i-1] != '\\') {
			return path[i+1:]
		}
	}
	return path
}
