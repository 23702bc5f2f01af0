package usecase

import crerr "github.com/cockroachdb/errors"

var (
	// ErrDependencyUnavailable marks failures of an upstream the run cannot
	// proceed without, e.g. the score provider behind an open circuit.
	ErrDependencyUnavailable = crerr.New("dependency unavailable")

	// ErrInvalidPayload marks provider responses that cannot be decoded into
	// the expected shape.
	ErrInvalidPayload = crerr.New("invalid payload")
)
