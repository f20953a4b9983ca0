/*
errors.go - Centralized error types for the rent engine

PURPOSE:
  All engine error types in one place. Callers classify with errors.Is
  and the IsClientError helper; the API layer maps client errors to 400.

ERROR CATEGORIES:
  1. Validation errors - malformed period tokens or dates (client input)
  2. Reference errors  - missing leases/units (surfaced by the store layer)

NOT ERRORS:
  - An empty fiscal window (end before start) means "zero collected /
    nothing to scan" and is returned as such.
  - A lease with absent start/end dates is treated as never-active.
  - A lease whose unit has no inventory entry resolves to a sentinel label.
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriod is returned when a rental-period token is not a
	// well-formed "YYYY-MM" or its month is outside 1-12.
	ErrInvalidPeriod = errors.New("invalid rental period")

	// ErrInvalidDate is returned when a date token cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// PeriodFormatError reports a malformed rental-period token.
type PeriodFormatError struct {
	Input  string
	Reason string
}

func (e *PeriodFormatError) Error() string {
	return fmt.Sprintf("invalid rental period %q: %s", e.Input, e.Reason)
}

func (e *PeriodFormatError) Unwrap() error { return ErrInvalidPeriod }

// DateFormatError reports a malformed date token.
type DateFormatError struct {
	Input string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q: want YYYY-MM-DD", e.Input)
}

func (e *DateFormatError) Unwrap() error { return ErrInvalidDate }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) || errors.Is(err, ErrInvalidDate)
}
