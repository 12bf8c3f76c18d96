/*
Package factory provides JSON to Go tax-policy conversion.

PURPOSE:
  Converts a JSON tax-year definition into a tax.Policy. This keeps the
  jurisdiction constants configurable without code changes - a future tax
  year ships as a data file, the server loads it at startup.

JSON SCHEMA:
  {
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
      {"rate": 0.47}
    ]
  }

  A bracket without a ceiling is the unbounded top bracket and must come
  last. Ceilings must be strictly increasing.

USAGE:
  policy, err := factory.ParsePolicy(jsonBytes)
  policy, err := factory.LoadPolicyFile("./policies/2027.json")

SEE ALSO:
  - tax/policy.go: Policy type and built-in 2026 table
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/dxp/hourtracker/tax"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PolicyJSON is the JSON representation of a tax-year policy.
type PolicyJSON struct {
	Year             int                 `json:"year"`
	CreditPointValue float64             `json:"credit_point_value"`
	BaseCreditPoints CreditPointsJSON    `json:"base_credit_points"`
	ExSoldier        ExSoldierJSON       `json:"ex_soldier"`
	SocialInsurance  SocialInsuranceJSON `json:"social_insurance"`
	PensionRate      float64             `json:"pension_rate"`
	StudyFundRate    float64             `json:"study_fund_rate"`
	Brackets         []BracketJSON       `json:"brackets"`
}

// CreditPointsJSON carries the gender-differentiated base points.
type CreditPointsJSON struct {
	Male   float64 `json:"male"`
	Female float64 `json:"female"`
}

// ExSoldierJSON configures the discharge bonus.
type ExSoldierJSON struct {
	BonusPoints   float64 `json:"bonus_points"`
	BenefitMonths int     `json:"benefit_months"`
}

// SocialInsuranceJSON configures the two-tier insurance rule.
type SocialInsuranceJSON struct {
	ReducedThreshold float64 `json:"reduced_threshold"`
	ReducedRate      float64 `json:"reduced_rate"`
	FullRate         float64 `json:"full_rate"`
}

// BracketJSON is one progressive bracket; omit ceiling for the top bracket.
type BracketJSON struct {
	Ceiling *float64 `json:"ceiling,omitempty"`
	Rate    float64  `json:"rate"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParsePolicy converts a JSON tax-year definition into a validated tax.Policy.
func ParsePolicy(data []byte) (tax.Policy, error) {
	var raw PolicyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return tax.Policy{}, fmt.Errorf("invalid policy JSON: %w", err)
	}

	if raw.Year == 0 {
		return tax.Policy{}, &tax.PolicyError{Year: raw.Year, Reason: "year is required"}
	}
	if raw.CreditPointValue <= 0 {
		return tax.Policy{}, &tax.PolicyError{Year: raw.Year, Reason: "credit_point_value must be positive"}
	}

	brackets := make([]tax.Bracket, len(raw.Brackets))
	for i, b := range raw.Brackets {
		if b.Ceiling == nil {
			brackets[i] = tax.TopBracket(b.Rate)
			continue
		}
		brackets[i] = tax.BoundedBracket(*b.Ceiling, b.Rate)
	}

	policy := tax.Policy{
		Year:                      raw.Year,
		Brackets:                  brackets,
		CreditPointValue:          decimal.NewFromFloat(raw.CreditPointValue),
		BaseCreditPointsMale:      decimal.NewFromFloat(raw.BaseCreditPoints.Male),
		BaseCreditPointsFemale:    decimal.NewFromFloat(raw.BaseCreditPoints.Female),
		ExSoldierBonusPoints:      decimal.NewFromFloat(raw.ExSoldier.BonusPoints),
		SoldierBenefitMonths:      raw.ExSoldier.BenefitMonths,
		InsuranceReducedThreshold: decimal.NewFromFloat(raw.SocialInsurance.ReducedThreshold),
		InsuranceReducedRate:      decimal.NewFromFloat(raw.SocialInsurance.ReducedRate),
		InsuranceFullRate:         decimal.NewFromFloat(raw.SocialInsurance.FullRate),
		PensionRate:               decimal.NewFromFloat(raw.PensionRate),
		StudyFundRate:             decimal.NewFromFloat(raw.StudyFundRate),
	}

	if err := policy.Validate(); err != nil {
		return tax.Policy{}, err
	}
	return policy, nil
}

// LoadPolicyFile reads and parses a tax-year policy from disk.
func LoadPolicyFile(path string) (tax.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tax.Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	return ParsePolicy(data)
}
