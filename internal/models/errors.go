package models

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("requested resource not found")
var ErrConflict = errors.New("resource conflict, item is still referenced")
var ErrInvalidCredentials = errors.New("invalid credentials") // email not authorized or password mismatch

// ErrEmptyOrder indicates that a submitted order contains no line with a
// positive quantity once negative quantities have been clamped to zero.
var ErrEmptyOrder = errors.New("order contains no items")

// ValidationError reports a missing or malformed field in a submission.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid field: %s", e.Field)
}
