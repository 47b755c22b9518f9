package services

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every operation either completes or reports one of these
// with all collections unchanged; nothing is swallowed and nothing retries.
var (
	// ErrValidation: bad or missing input, rejected before any state change.
	ErrValidation = errors.New("validation error")

	// ErrInsufficientStock: a distribution asked for more than the catalogue holds.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrPrecondition: a stop lifecycle rule was violated.
	ErrPrecondition = errors.New("precondition failed")

	// ErrNotFound: a referenced id is missing from its collection.
	ErrNotFound = errors.New("not found")

	// ErrStore: the underlying persistence layer failed; the operation is
	// presumed not applied.
	ErrStore = errors.New("store error")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func preconditionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func storef(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStore, op, err)
}
