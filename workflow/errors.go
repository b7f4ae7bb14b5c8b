package workflow

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fusex/medevac-api/store"
)

// Every failure returned by the orchestrators wraps exactly one of these.
var (
	ErrUnauthenticated = errors.New("no acting principal")
	ErrUnauthorized    = errors.New("not authorized")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("invalid decision")
	ErrTransaction     = errors.New("transaction failed")
)

// PlacementError reports attachments that could not be moved to their
// permanent location after the workflow step had already committed.
type PlacementError struct {
	Owner uuid.UUID
	Err   error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("place attachments of %s: %v", e.Owner, e.Err)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func unauthorizedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}

// lookup classifies an error from loading what of the given id.
func lookup(err error, what string, id interface{}) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s %v", ErrNotFound, what, id)
	}
	return fmt.Errorf("%w: load %s %v: %v", ErrTransaction, what, id, err)
}

// classify keeps workflow errors and turns anything else coming out of a
// unit of work into a transaction failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrUnauthenticated, ErrUnauthorized, ErrNotFound, ErrValidation, ErrTransaction} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrTransaction, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
