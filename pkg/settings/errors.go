package settings

import (
	"errors"
	"fmt"
)

// Engine errors.
var (
	// ErrValidation indicates a key or value outside the declared schema.
	ErrValidation = errors.New("validation failed")
)

// FieldError carries the context of a failed group operation: which
// group, which instance, which field, during what.
type FieldError struct {
	// Group is the group name (e.g. "channel").
	Group string

	// Index is the group's 0-based instance index, or NoIndex for
	// singleton groups.
	Index int

	// Field is the field name. Empty when the failure precedes any
	// particular field.
	Field string

	// Op is the operation that failed: "read", "write", "load" or "set".
	Op string

	// Err is the underlying cause.
	Err error
}

// Error formats the failure with its full field context.
func (e *FieldError) Error() string {
	switch {
	case e.Index != NoIndex && e.Field != "":
		return fmt.Sprintf("%s %s[%d].%s: %v", e.Op, e.Group, e.Index, e.Field, e.Err)
	case e.Index != NoIndex:
		return fmt.Sprintf("%s %s[%d]: %v", e.Op, e.Group, e.Index, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s %s.%s: %v", e.Op, e.Group, e.Field, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Group, e.Err)
	}
}

// Unwrap returns the underlying cause so errors.Is reaches the
// transport and codec sentinels.
func (e *FieldError) Unwrap() error {
	return e.Err
}
