/*
calculator.go - Net salary breakdown computation

PURPOSE:
  Turns one gross monthly salary plus a set of per-person modifiers into a
  full deduction breakdown: pension, study fund, social insurance, credit
  points and income tax, reconciled so net + deductions == gross.

COMPUTATION ORDER:
  1. Pension / study fund: flat percentages, only when enabled
  2. Social insurance: two-tier (reduced rate up to a threshold plateau,
     full rate on the remainder)
  3. Credit points: gender-linked base + ex-soldier bonus inside the
     discharge window; discount = points x point value
  4. Income tax: marginal brackets, minus the credit discount, floored at
     zero - credits never produce a refund
  5. Round every monetary field to 2 decimals, once, on the way out

PARITY NOTE:
  When PaysTax is false, credit points and discount are reported as zero
  rather than computed-but-unused. That mirrors the upstream display
  behavior: the fields signal "had no effect", not an accounting truth.
*/
package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modifiers are the per-person switches affecting the breakdown.
type Modifiers struct {
	PaysTax          bool
	PensionEnabled   bool
	StudyFundEnabled bool
	IsFemale         bool
	IsExSoldier      bool

	// DischargeDate gates the ex-soldier bonus. nil means the bonus never
	// applies, even when IsExSoldier is set.
	DischargeDate *time.Time
}

// Breakdown is the computed deduction split for one gross salary.
// All monetary fields are rounded to 2 decimals; TotalDeductions is the sum
// of the four deduction fields and NetSalary is gross minus that sum.
type Breakdown struct {
	GrossSalary           decimal.Decimal
	PensionDeduction      decimal.Decimal
	StudyFundDeduction    decimal.Decimal
	BituachLeumiDeduction decimal.Decimal
	CreditPoints          decimal.Decimal
	CreditDiscount        decimal.Decimal
	IncomeTaxDeduction    decimal.Decimal
	TotalDeductions       decimal.Decimal
	NetSalary             decimal.Decimal
}

// ComputeBreakdown calculates the full deduction breakdown for one gross
// monthly salary. now anchors the ex-soldier discharge window; callers pass
// time.Now() outside of tests.
func ComputeBreakdown(gross decimal.Decimal, mods Modifiers, policy Policy, now time.Time) Breakdown {
	pension := decimal.Zero
	if mods.PensionEnabled {
		pension = gross.Mul(policy.PensionRate)
	}

	studyFund := decimal.Zero
	if mods.StudyFundEnabled {
		studyFund = gross.Mul(policy.StudyFundRate)
	}

	insurance := socialInsurance(gross, policy)

	creditPoints := decimal.Zero
	creditDiscount := decimal.Zero
	incomeTax := decimal.Zero
	if mods.PaysTax {
		creditPoints = creditPointsFor(mods, policy, now)
		creditDiscount = creditPoints.Mul(policy.CreditPointValue)

		grossTax := ApplyBrackets(gross, policy.Brackets)
		incomeTax = grossTax.Sub(creditDiscount)
		if incomeTax.IsNegative() {
			incomeTax = decimal.Zero
		}
	}

	totalDeductions := pension.Add(studyFund).Add(insurance).Add(incomeTax)

	return Breakdown{
		GrossSalary:           gross.Round(2),
		PensionDeduction:      pension.Round(2),
		StudyFundDeduction:    studyFund.Round(2),
		BituachLeumiDeduction: insurance.Round(2),
		CreditPoints:          creditPoints,
		CreditDiscount:        creditDiscount.Round(2),
		IncomeTaxDeduction:    incomeTax.Round(2),
		TotalDeductions:       totalDeductions.Round(2),
		NetSalary:             gross.Sub(totalDeductions).Round(2),
	}
}

// socialInsurance applies the two-tier Bituach Leumi + health tax rule:
// everything up to the reduced threshold at the reduced rate, the remainder
// at the full rate. The first tier is a plateau, not marginal-on-full.
func socialInsurance(gross decimal.Decimal, policy Policy) decimal.Decimal {
	if gross.LessThanOrEqual(policy.InsuranceReducedThreshold) {
		return gross.Mul(policy.InsuranceReducedRate)
	}
	reducedPart := policy.InsuranceReducedThreshold.Mul(policy.InsuranceReducedRate)
	fullPart := gross.Sub(policy.InsuranceReducedThreshold).Mul(policy.InsuranceFullRate)
	return reducedPart.Add(fullPart)
}

// creditPointsFor sums the gender-linked base points with the ex-soldier
// bonus when the discharge falls inside [0, SoldierBenefitMonths] whole
// months before now, inclusive on both ends.
func creditPointsFor(mods Modifiers, policy Policy, now time.Time) decimal.Decimal {
	points := policy.BaseCreditPointsMale
	if mods.IsFemale {
		points = policy.BaseCreditPointsFemale
	}

	if mods.IsExSoldier && mods.DischargeDate != nil {
		months := wholeMonthsBetween(*mods.DischargeDate, now)
		if months >= 0 && months <= policy.SoldierBenefitMonths {
			points = points.Add(policy.ExSoldierBonusPoints)
		}
	}

	return points
}

// wholeMonthsBetween counts complete months from one date to another,
// negative when to precedes from.
func wholeMonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}
