package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyOpen is returned when opening a reader that holds a file
	ErrAlreadyOpen = errors.New("reader already has an open file")

	// ErrNotOpen is returned by data accessors of a closed reader
	ErrNotOpen = errors.New("reader has no open file")

	// ErrRecordIndex is returned for a record index outside the grid
	ErrRecordIndex = errors.New("record index out of range")

	// ErrChannel is returned for a channel outside the file's channels
	ErrChannel = errors.New("channel out of range")

	// ErrKeyNotFound is returned by typed metadata getters for absent keys
	ErrKeyNotFound = errors.New("metadata key not found")

	// ErrTypeMismatch is returned when a metadata value cannot be read as the requested type
	ErrTypeMismatch = errors.New("metadata type mismatch")
)

// FormatError is returned when a dataset is structurally invalid.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: malformed dataset: %s", e.Path, e.Reason)
}

// UnsupportedError is returned when a dataset uses a content type or
// quantization this package does not know.
type UnsupportedError struct {
	Path    string
	Feature string
	Value   int
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: unsupported %s %d", e.Path, e.Feature, e.Value)
}
