package factory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxp/hourtracker/factory"
	"github.com/dxp/hourtracker/tax"
)

const policy2026JSON = `{
  "year": 2026,
  "credit_point_value": 242,
  "base_credit_points": {"male": 2.25, "female": 2.75},
  "ex_soldier": {"bonus_points": 2, "benefit_months": 36},
  "social_insurance": {
    "reduced_threshold": 7703,
    "reduced_rate": 0.0427,
    "full_rate": 0.1217
  },
  "pension_rate": 0.06,
  "study_fund_rate": 0.025,
  "brackets": [
    {"ceiling": 7010, "rate": 0.10},
    {"ceiling": 10060, "rate": 0.14},
    {"ceiling": 19000, "rate": 0.20},
    {"ceiling": 25100, "rate": 0.31},
    {"ceiling": 46690, "rate": 0.35},
    {"rate": 0.47}
  ]
}`

func TestParsePolicy_MatchesBuiltIn2026(t *testing.T) {
	// GIVEN: The 2026 table expressed as JSON
	// WHEN: Parsing it
	// THEN: The resulting policy computes identically to the built-in table

	parsed, err := factory.ParsePolicy([]byte(policy2026JSON))
	require.NoError(t, err)

	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	mods := tax.Modifiers{PaysTax: true, PensionEnabled: true, StudyFundEnabled: true}
	gross := decimal.NewFromInt(12500)

	fromJSON := tax.ComputeBreakdown(gross, mods, parsed, now)
	builtIn := tax.ComputeBreakdown(gross, mods, tax.Policy2026(), now)

	assert.True(t, fromJSON.NetSalary.Equal(builtIn.NetSalary))
	assert.True(t, fromJSON.IncomeTaxDeduction.Equal(builtIn.IncomeTaxDeduction))
	assert.True(t, fromJSON.BituachLeumiDeduction.Equal(builtIn.BituachLeumiDeduction))
}

func TestParsePolicy_RejectsMalformedJSON(t *testing.T) {
	_, err := factory.ParsePolicy([]byte(`{"year": `))
	assert.Error(t, err)
}

func TestParsePolicy_RequiresYear(t *testing.T) {
	_, err := factory.ParsePolicy([]byte(`{"credit_point_value": 242, "brackets": [{"rate": 0.1}]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tax.ErrInvalidPolicy))
}

func TestParsePolicy_RejectsDecreasingCeilings(t *testing.T) {
	bad := `{
	  "year": 2027,
	  "credit_point_value": 250,
	  "brackets": [
	    {"ceiling": 8000, "rate": 0.10},
	    {"ceiling": 7000, "rate": 0.14},
	    {"rate": 0.47}
	  ]
	}`
	_, err := factory.ParsePolicy([]byte(bad))
	assert.Error(t, err)
}

func TestParsePolicy_RejectsEmptyBrackets(t *testing.T) {
	_, err := factory.ParsePolicy([]byte(`{"year": 2027, "credit_point_value": 250, "brackets": []}`))
	assert.Error(t, err)
}
