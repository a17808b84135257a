/*
errors.go - Error types for the wage engine

ERROR CATEGORIES:
  1. Configuration errors - statutory table is missing an entry
  2. Input-shape errors - malformed clock values, out-of-range counts

  Negative elapsed hours are clamped to zero, never raised.

USAGE:
  min, err := wage.MinimumWage(2031)
  if errors.Is(err, wage.ErrUnknownRateYear) {
      // fatal to the calling operation, never default
  }

SEE ALSO:
  - rates.go: raises UnknownRateYearError
  - clock.go: raises ErrInvalidClock
  - contract/errors.go: lifecycle errors
*/
package wage

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnknownRateYear is returned when the minimum wage table has no entry
	// for the requested year.
	ErrUnknownRateYear = errors.New("unknown rate year")

	// ErrInvalidClock is returned for wall-clock values not in HH:MM form.
	ErrInvalidClock = errors.New("invalid clock value")

	// ErrInvalidInput is returned for out-of-range numeric inputs.
	ErrInvalidInput = errors.New("invalid input")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// UnknownRateYearError names the year the table could not resolve.
type UnknownRateYearError struct {
	Year int
}

func (e *UnknownRateYearError) Error() string {
	return fmt.Sprintf("no statutory minimum wage for year %d", e.Year)
}

func (e *UnknownRateYearError) Unwrap() error {
	return ErrUnknownRateYear
}

// InputError describes a field that failed boundary validation.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}

// IsConfigError reports whether err comes from a missing statutory table entry.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrUnknownRateYear)
}

// IsInputError reports whether err was raised by boundary validation.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidClock)
}
