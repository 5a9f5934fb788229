package rna

import "errors"

var (
	// ErrInvalidJSON is returned when a document body is not a JSON object.
	ErrInvalidJSON = errors.New("invalid JSON document")

	// ErrNotFound is returned when a document or path does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidProperty is returned for empty or reserved property names.
	ErrInvalidProperty = errors.New("invalid property name")
)
