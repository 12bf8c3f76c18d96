/*
Package tax derives net take-home pay from a gross monthly salary under a
progressive income-tax and social-insurance model.

PURPOSE:
  Two pure pieces: a marginal bracket engine (brackets.go) and a breakdown
  calculator (calculator.go) that combines pension, study fund, social
  insurance, credit points and income tax into one reconciled result.

KEY CONCEPTS:
  - Bracket: (ceiling, rate) pair; a nil ceiling marks the unbounded top
  - Policy: A full "tax year" constant table, injectable data not code
  - Modifiers: Per-person switches (tax liability, pension, credits)
  - Breakdown: The returned deduction split; net + deductions == gross

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal throughout; rounding to 2 decimals happens
     once, on the returned breakdown
  2. Policy as data: swapping tax years is a data change (see Policy2026
     and the factory package), never a code change
  3. Purity: no clock access - "now" is an explicit argument

SEE ALSO:
  - policy.go: Policy table and the built-in 2026 constants
  - calculator.go: ComputeBreakdown
  - factory: JSON policy parsing
*/
package tax

import "github.com/shopspring/decimal"

// =============================================================================
// MARGINAL BRACKETS
// =============================================================================

// Bracket is one step of a progressive rate table. Ceilings must be strictly
// increasing; the final bracket leaves Ceiling nil to mean "no upper bound".
type Bracket struct {
	Ceiling *decimal.Decimal
	Rate    decimal.Decimal
}

// BoundedBracket builds a bracket with an upper ceiling.
func BoundedBracket(ceiling, rate float64) Bracket {
	c := decimal.NewFromFloat(ceiling)
	return Bracket{Ceiling: &c, Rate: decimal.NewFromFloat(rate)}
}

// TopBracket builds the unbounded final bracket.
func TopBracket(rate float64) Bracket {
	return Bracket{Rate: decimal.NewFromFloat(rate)}
}

// ApplyBrackets computes standard marginal taxation of amount: each bracket
// taxes only the slice of the amount between the previous ceiling and its
// own. Amounts at or below zero reach no bracket and yield zero tax. The
// result is monotonically non-decreasing in amount.
func ApplyBrackets(amount decimal.Decimal, brackets []Bracket) decimal.Decimal {
	total := decimal.Zero
	previousCeiling := decimal.Zero

	for _, b := range brackets {
		if amount.LessThanOrEqual(previousCeiling) {
			break
		}

		upper := amount
		if b.Ceiling != nil && b.Ceiling.LessThan(amount) {
			upper = *b.Ceiling
		}

		total = total.Add(upper.Sub(previousCeiling).Mul(b.Rate))

		if b.Ceiling == nil {
			break
		}
		previousCeiling = *b.Ceiling
	}

	return total
}
