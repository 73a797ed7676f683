package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBadInput is returned when caller input is missing, blank or out of range
	ErrBadInput = errors.New("bad input")

	// ErrNotFound is returned when an entity id does not exist in the store
	ErrNotFound = errors.New("not found")

	// ErrLookupNotFound is returned when the calorie service has no usable match for a query
	ErrLookupNotFound = errors.New("no calorie data found")

	// ErrMalformedResponse is returned when the calorie service body cannot be parsed
	ErrMalformedResponse = errors.New("malformed calorie service response")

	// ErrExternalLookup is returned when the calorie service request fails at transport level or with an error status
	ErrExternalLookup = errors.New("calorie service request failed")

	// ErrPersistenceInconsistency is returned when a product that was just written is not visible on re-read
	ErrPersistenceInconsistency = errors.New("persistence inconsistency")
)

// ExternalLookupError describes a failed call to the calorie service.
// StatusCode is zero for transport failures.
type ExternalLookupError struct {
	Query      string
	StatusCode int
	Err        error
}

func (e *ExternalLookupError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s for query %q: status %d", ErrExternalLookup, e.Query, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s for query %q: %v", ErrExternalLookup, e.Query, e.Err)
	}
	return fmt.Sprintf("%s for query %q", ErrExternalLookup, e.Query)
}

// Is makes errors.Is(err, ErrExternalLookup) hold for every ExternalLookupError.
func (e *ExternalLookupError) Is(target error) bool {
	return target == ErrExternalLookup
}

func (e *ExternalLookupError) Unwrap() error {
	return e.Err
}
