package tax_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxp/hourtracker/tax"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var now = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func datePtr(t time.Time) *time.Time { return &t }

// assertMoney compares a decimal against an expected float with exact
// 2-decimal equality.
func assertMoney(t *testing.T, expected float64, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(dec(expected)), "%s: expected %v, got %s", field, expected, got)
}

// =============================================================================
// BRACKET ENGINE
// =============================================================================

func TestApplyBrackets_ZeroAndNegativeAmounts(t *testing.T) {
	brackets := tax.Policy2026().Brackets

	assert.True(t, tax.ApplyBrackets(decimal.Zero, brackets).IsZero())
	assert.True(t, tax.ApplyBrackets(dec(-500), brackets).IsZero())
}

func TestApplyBrackets_FirstBracketOnly(t *testing.T) {
	// 7000 sits entirely inside the 10% bracket.
	got := tax.ApplyBrackets(dec(7000), tax.Policy2026().Brackets)
	assertMoney(t, 700, got, "tax")
}

func TestApplyBrackets_ExactCeiling(t *testing.T) {
	got := tax.ApplyBrackets(dec(7010), tax.Policy2026().Brackets)
	assertMoney(t, 701, got, "tax")
}

func TestApplyBrackets_SpansSeveralBrackets(t *testing.T) {
	// GIVEN: 10060 = 7010 @ 10% + 3050 @ 14%
	got := tax.ApplyBrackets(dec(10060), tax.Policy2026().Brackets)
	assertMoney(t, 1128, got, "tax")
}

func TestApplyBrackets_TopBracket(t *testing.T) {
	// 50000 reaches the unbounded 47% bracket:
	// 701 + 427 + 1788 + 1891 + 7556.5 + 3310*0.47
	got := tax.ApplyBrackets(dec(50000), tax.Policy2026().Brackets)
	assertMoney(t, 13919.2, got, "tax")
}

func TestApplyBrackets_Monotonic(t *testing.T) {
	brackets := tax.Policy2026().Brackets
	previous := decimal.Zero
	for amount := 0; amount <= 60000; amount += 1375 {
		got := tax.ApplyBrackets(decimal.NewFromInt(int64(amount)), brackets)
		assert.True(t, got.GreaterThanOrEqual(previous), "tax decreased at amount %d", amount)
		previous = got
	}
}

// =============================================================================
// POLICY VALIDATION
// =============================================================================

func TestPolicyValidate_BuiltIn2026(t *testing.T) {
	require.NoError(t, tax.Policy2026().Validate())
}

func TestPolicyValidate_RejectsNonIncreasingCeilings(t *testing.T) {
	p := tax.Policy2026()
	p.Brackets = []tax.Bracket{
		tax.BoundedBracket(5000, 0.10),
		tax.BoundedBracket(4000, 0.14),
		tax.TopBracket(0.47),
	}
	assert.Error(t, p.Validate())
}

func TestPolicyValidate_RejectsUnboundedMiddleBracket(t *testing.T) {
	p := tax.Policy2026()
	p.Brackets = []tax.Bracket{
		tax.TopBracket(0.10),
		tax.BoundedBracket(5000, 0.14),
	}
	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, tax.ErrInvalidPolicy))
}

// =============================================================================
// NET SALARY BREAKDOWN
// =============================================================================

func TestComputeBreakdown_NoTaxNoOptionalDeductions(t *testing.T) {
	// GIVEN: 7000 gross, tax disabled, pension and study fund off
	// WHEN: Computing the breakdown
	// THEN: Only social insurance is withheld: 7000 * 4.27%

	b := tax.ComputeBreakdown(dec(7000), tax.Modifiers{}, tax.Policy2026(), now)

	assertMoney(t, 0, b.IncomeTaxDeduction, "income tax")
	assertMoney(t, 0, b.PensionDeduction, "pension")
	assertMoney(t, 0, b.StudyFundDeduction, "study fund")
	assertMoney(t, 298.90, b.BituachLeumiDeduction, "social insurance")
	assertMoney(t, 6701.10, b.NetSalary, "net")
	assert.True(t, b.NetSalary.Equal(b.GrossSalary.Sub(b.BituachLeumiDeduction)))
}

func TestComputeBreakdown_TaxDisabled_CreditFieldsReportedZero(t *testing.T) {
	// Display parity: with tax off the credit fields come back as zero to
	// signal they had no effect, they are not computed-and-ignored.
	mods := tax.Modifiers{IsFemale: true, IsExSoldier: true, DischargeDate: datePtr(now.AddDate(0, -10, 0))}
	b := tax.ComputeBreakdown(dec(9000), mods, tax.Policy2026(), now)

	assert.True(t, b.CreditPoints.IsZero())
	assert.True(t, b.CreditDiscount.IsZero())
	assert.True(t, b.IncomeTaxDeduction.IsZero())
}

func TestComputeBreakdown_FullDeductions(t *testing.T) {
	// GIVEN: 10000 gross, male, tax + pension + study fund enabled
	// THEN: pension 600, fund 250, insurance 608.46,
	//       income tax = 1119.60 gross tax - 544.50 credits = 575.10

	mods := tax.Modifiers{PaysTax: true, PensionEnabled: true, StudyFundEnabled: true}
	b := tax.ComputeBreakdown(dec(10000), mods, tax.Policy2026(), now)

	assertMoney(t, 600, b.PensionDeduction, "pension")
	assertMoney(t, 250, b.StudyFundDeduction, "study fund")
	assertMoney(t, 608.46, b.BituachLeumiDeduction, "social insurance")
	assert.True(t, b.CreditPoints.Equal(dec(2.25)))
	assertMoney(t, 544.50, b.CreditDiscount, "credit discount")
	assertMoney(t, 575.10, b.IncomeTaxDeduction, "income tax")
	assertMoney(t, 2033.56, b.TotalDeductions, "total deductions")
	assertMoney(t, 7966.44, b.NetSalary, "net")
}

func TestComputeBreakdown_FemaleBaseCreditPoints(t *testing.T) {
	mods := tax.Modifiers{PaysTax: true, IsFemale: true}
	b := tax.ComputeBreakdown(dec(10000), mods, tax.Policy2026(), now)

	assert.True(t, b.CreditPoints.Equal(dec(2.75)))
}

func TestComputeBreakdown_CreditsNeverRefund(t *testing.T) {
	// GIVEN: Gross tax 550 and a credit discount well above it
	// THEN: Income tax floors at zero, no negative deduction

	mods := tax.Modifiers{
		PaysTax:       true,
		IsFemale:      true,
		IsExSoldier:   true,
		DischargeDate: datePtr(now.AddDate(0, -10, 0)),
	}
	b := tax.ComputeBreakdown(dec(5500), mods, tax.Policy2026(), now)

	assert.True(t, b.CreditPoints.Equal(dec(4.75)))
	assertMoney(t, 0, b.IncomeTaxDeduction, "income tax")
}

func TestComputeBreakdown_ExSoldierWindow(t *testing.T) {
	policy := tax.Policy2026()

	// 10 months since discharge: bonus applies.
	recent := tax.Modifiers{PaysTax: true, IsExSoldier: true, DischargeDate: datePtr(now.AddDate(0, -10, 0))}
	b := tax.ComputeBreakdown(dec(10000), recent, policy, now)
	assert.True(t, b.CreditPoints.Equal(dec(4.25)), "expected base+bonus, got %s", b.CreditPoints)

	// 40 months since discharge: window expired.
	old := tax.Modifiers{PaysTax: true, IsExSoldier: true, DischargeDate: datePtr(now.AddDate(0, -40, 0))}
	b = tax.ComputeBreakdown(dec(10000), old, policy, now)
	assert.True(t, b.CreditPoints.Equal(dec(2.25)))

	// Exactly 36 months: inclusive, bonus still applies.
	edge := tax.Modifiers{PaysTax: true, IsExSoldier: true, DischargeDate: datePtr(now.AddDate(0, -36, 0))}
	b = tax.ComputeBreakdown(dec(10000), edge, policy, now)
	assert.True(t, b.CreditPoints.Equal(dec(4.25)))

	// No discharge date recorded: never a bonus.
	undated := tax.Modifiers{PaysTax: true, IsExSoldier: true}
	b = tax.ComputeBreakdown(dec(10000), undated, policy, now)
	assert.True(t, b.CreditPoints.Equal(dec(2.25)))
}

func TestComputeBreakdown_Reconciles(t *testing.T) {
	// net + totalDeductions must equal gross to within the final rounding.
	tolerance := dec(0.011)
	mods := tax.Modifiers{PaysTax: true, PensionEnabled: true, StudyFundEnabled: true}

	for gross := 0; gross <= 60000; gross += 1733 {
		g := decimal.NewFromInt(int64(gross))
		b := tax.ComputeBreakdown(g, mods, tax.Policy2026(), now)

		diff := b.NetSalary.Add(b.TotalDeductions).Sub(g).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance), "gross %d: off by %s", gross, diff)
	}
}

func TestComputeBreakdown_BelowInsuranceThreshold(t *testing.T) {
	// At the threshold exactly, the reduced rate covers the full amount.
	b := tax.ComputeBreakdown(dec(7703), tax.Modifiers{}, tax.Policy2026(), now)
	assertMoney(t, 328.92, b.BituachLeumiDeduction, "social insurance")
}
