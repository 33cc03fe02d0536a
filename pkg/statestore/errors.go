package statestore

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for key parsing.
var (
	// ErrEmptyKey indicates the key is empty or whitespace only.
	ErrEmptyKey = errors.New("statestore: key is empty")

	// ErrKeyType indicates the key is neither a string nor an integer,
	// or (in strict mode) a segment looks like a number.
	ErrKeyType = errors.New("statestore: wrong key type")

	// ErrDoubleSeparator indicates the key splits into an empty segment:
	// two separators in a row, or a leading/trailing separator.
	ErrDoubleSeparator = errors.New("statestore: key contains two or more separators in a row")
)

// Sentinel errors for resolution.
var (
	// ErrNotFound indicates nothing is registered at the path.
	ErrNotFound = errors.New("statestore: object not found")

	// ErrNamespace indicates the path names an intermediate node,
	// not a registered value.
	ErrNamespace = errors.New("statestore: key names a namespace, not a value")

	// ErrTypeMismatch indicates ResolveAs found a value of another type.
	ErrTypeMismatch = errors.New("statestore: type mismatch")
)

// KeyError reports a key that could not be parsed into a path.
type KeyError struct {
	// Key is the offending key as text.
	Key string
	// Index is the segment index at fault, or -1 for the whole key.
	Index int
	// Err is one of ErrEmptyKey, ErrKeyType, ErrDoubleSeparator.
	Err error
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%v: key %q segment %d", e.Err, e.Key, e.Index)
	}
	return fmt.Sprintf("%v: key %q", e.Err, e.Key)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *KeyError) Unwrap() error {
	return e.Err
}

// LookupError reports a well-formed key whose path does not lead to a value.
type LookupError struct {
	// Key is the key being resolved.
	Key string
	// Segment is the segment where the walk stopped.
	Segment string
	// Index is the position of Segment in the path.
	Index int
	// Path is the part of the path walked successfully before Segment.
	Path []string
	// Err is ErrNotFound or ErrNamespace.
	Err error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("%v: key %q at segment %d (%q) after [%s]",
		e.Err, e.Key, e.Index, e.Segment, strings.Join(e.Path, "."))
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// Kind returns a short, stable name for the failure class of err.
// Used as a log and metric attribute.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyKey):
		return "empty_key"
	case errors.Is(err, ErrKeyType):
		return "key_type"
	case errors.Is(err, ErrDoubleSeparator):
		return "double_separator"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNamespace):
		return "namespace"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	default:
		return "unknown"
	}
}
