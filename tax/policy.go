package tax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// POLICY - jurisdiction constants for one tax year
// =============================================================================

// Policy bundles every jurisdiction-specific constant the calculator needs.
// The values are versioned together as a single tax-year table so a future
// year (or another jurisdiction) is a data swap, not a code change.
type Policy struct {
	Year int

	// Income tax
	Brackets         []Bracket
	CreditPointValue decimal.Decimal // monetary value of one credit point per month

	// Base credit points, gender-differentiated
	BaseCreditPointsMale   decimal.Decimal
	BaseCreditPointsFemale decimal.Decimal

	// Ex-soldier bonus points, granted within the benefit window after discharge
	ExSoldierBonusPoints decimal.Decimal
	SoldierBenefitMonths int

	// Bituach Leumi + health tax (employee portion), two-tier
	InsuranceReducedThreshold decimal.Decimal
	InsuranceReducedRate      decimal.Decimal
	InsuranceFullRate         decimal.Decimal

	// Voluntary deductions
	PensionRate   decimal.Decimal
	StudyFundRate decimal.Decimal
}

// Policy2026 returns the built-in 2026 table (Israeli Tax Authority monthly
// figures, employee portion).
func Policy2026() Policy {
	return Policy{
		Year: 2026,
		Brackets: []Bracket{
			BoundedBracket(7010, 0.10),
			BoundedBracket(10060, 0.14),
			BoundedBracket(19000, 0.20),
			BoundedBracket(25100, 0.31),
			BoundedBracket(46690, 0.35),
			TopBracket(0.47),
		},
		CreditPointValue:          decimal.NewFromInt(242),
		BaseCreditPointsMale:      decimal.NewFromFloat(2.25),
		BaseCreditPointsFemale:    decimal.NewFromFloat(2.75),
		ExSoldierBonusPoints:      decimal.NewFromInt(2),
		SoldierBenefitMonths:      36,
		InsuranceReducedThreshold: decimal.NewFromInt(7703), // 60% of the average wage
		InsuranceReducedRate:      decimal.NewFromFloat(0.0427),
		InsuranceFullRate:         decimal.NewFromFloat(0.1217),
		PensionRate:               decimal.NewFromFloat(0.06),
		StudyFundRate:             decimal.NewFromFloat(0.025),
	}
}

// Validate checks structural soundness of the table: at least one bracket,
// strictly increasing ceilings, and only the final bracket unbounded.
// Failures unwrap to ErrInvalidPolicy.
func (p Policy) Validate() error {
	if len(p.Brackets) == 0 {
		return &PolicyError{Year: p.Year, Reason: "no tax brackets"}
	}

	previous := decimal.Zero
	for i, b := range p.Brackets {
		if b.Ceiling == nil {
			if i != len(p.Brackets)-1 {
				return &PolicyError{Year: p.Year, Reason: fmt.Sprintf("unbounded bracket %d is not last", i)}
			}
			continue
		}
		if b.Ceiling.LessThanOrEqual(previous) {
			return &PolicyError{Year: p.Year, Reason: fmt.Sprintf("bracket %d ceiling %s not increasing", i, b.Ceiling)}
		}
		previous = *b.Ceiling
	}
	return nil
}
