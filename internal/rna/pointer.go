package rna

import (
	"strings"

	"github.com/google/uuid"
)

// TypeField names the member holding a nested struct's type.
const TypeField = "_type"

// Pointer locates a struct inside an owner document.
type Pointer struct {
	Owner uuid.UUID
	Type  string
	// Path is the gjson path from the owner. Empty means the owner itself.
	Path string
}

// IsOwner reports whether the pointer addresses the owner document itself.
func (p Pointer) IsOwner() bool {
	return p.Path == ""
}

// IsNil reports whether the pointer is the zero pointer.
func (p Pointer) IsNil() bool {
	return p == Pointer{}
}

func (p Pointer) String() string {
	var b strings.Builder
	b.WriteString(p.Type)
	b.WriteByte('(')
	b.WriteString(p.Owner.String())
	if p.Path != "" {
		b.WriteByte(':')
		b.WriteString(p.Path)
	}
	b.WriteByte(')')
	return b.String()
}

// Resolver re-resolves data locations from an owner ID.
type Resolver interface {
	// Resolve finds the struct at path inside owner.
	Resolve(owner uuid.UUID, path string) (Pointer, bool)
	// HasProperty reports whether the struct at p has prop.
	HasProperty(p Pointer, prop string) bool
}

func join(path, prop string) string {
	switch {
	case path == "":
		return prop
	case prop == "":
		return path
	}
	return path + "." + prop
}

// validProperty rejects names gjson would read as path syntax.
func validProperty(prop string) bool {
	if prop == "" || prop == TypeField {
		return false
	}
	return !strings.ContainsAny(prop, ".*?|#@\\")
}
