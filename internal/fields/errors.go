package fields

import (
	"errors"
	"fmt"
)

// Validation sentinels. Rename reports exactly one of these; everything
// else in the model is total and cannot fail.
var (
	// ErrEmptyID rejects a rename to a blank id.
	ErrEmptyID = errors.New("field id cannot be empty")

	// ErrDuplicateID rejects a rename to an id already used anywhere in
	// the store, on any page.
	ErrDuplicateID = errors.New("field id already in use")

	// ErrUnknownField reports an operation against an id that does not
	// exist on the addressed page.
	ErrUnknownField = errors.New("no such field")
)

// ValidationError carries the rejected id alongside the sentinel cause so
// callers can keep showing the rejected input with the reason.
type ValidationError struct {
	ID  string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field id %q: %v", e.ID, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
