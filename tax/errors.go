/*
errors.go - Error types for tax policy validation

PURPOSE:
  Sentinel + structured errors so callers can branch with errors.Is
  without string matching. The calculators themselves never error; only
  policy construction can fail.

USAGE:
  if errors.Is(err, tax.ErrInvalidPolicy) {
      // reject the uploaded policy file, keep the built-in table
  }
*/
package tax

import (
	"errors"
	"fmt"
)

// ErrInvalidPolicy is returned when a tax-year table fails validation.
var ErrInvalidPolicy = errors.New("invalid tax policy")

// PolicyError carries the failing year and the specific violation.
type PolicyError struct {
	Year   int
	Reason string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("policy %d: %s", e.Year, e.Reason)
}

func (e *PolicyError) Unwrap() error {
	return ErrInvalidPolicy
}
