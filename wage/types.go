/*
Package wage computes pay for a single worked shift.

PURPOSE:
  Pure calculation over explicit inputs: a time interval, an hourly rate
  configuration, and a weekly premium window ("Shabbat window"). No I/O,
  no shared state, safe for concurrent use.

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftInterval: A worked start/end pair, overnight-aware
  - RateConfig: Base rate, optional premium rate, premium window hours
  - WageResult: Minute split and pay split for one shift
  - Overtime: Linear add-on component, outside the premium computation

DESIGN PRINCIPLES:
  1. Never throw for pay display: malformed input degrades to zero pay
     or a derived default rate, it is never an error
  2. Precision: Uses decimal.Decimal to avoid floating-point errors;
     rounding to 2 decimals happens at the API boundary only
  3. Purity: Each call operates solely on its arguments

SEE ALSO:
  - window.go: Weekly premium window resolution
  - calculator.go: The overlap and pay computation
*/
package wage

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultWindowStartHour opens the premium window Friday afternoon.
	DefaultWindowStartHour = 15

	// DefaultWindowEndHour closes the premium window Sunday morning.
	DefaultWindowEndHour = 5
)

var (
	// premiumMultiplier derives the premium rate when none is configured.
	premiumMultiplier = decimal.NewFromFloat(1.5)

	// overtimeMultiplier derives the overtime rate when none is configured.
	overtimeMultiplier = decimal.NewFromFloat(1.25)
)

// =============================================================================
// SHIFT INTERVAL
// =============================================================================

// ShiftInterval is a single worked time interval.
type ShiftInterval struct {
	Start time.Time
	End   time.Time
}

// Normalized returns the interval with an overnight end pushed to the next
// day. A shift entered as 23:00-01:00 on one date crosses midnight; the end
// belongs to the following day.
func (si ShiftInterval) Normalized() ShiftInterval {
	if si.End.Before(si.Start) {
		si.End = si.End.AddDate(0, 0, 1)
	}
	return si
}

// Minutes returns the whole minutes between start and end after overnight
// normalization. Zero or negative durations report 0.
func (si ShiftInterval) Minutes() int64 {
	n := si.Normalized()
	m := int64(n.End.Sub(n.Start) / time.Minute)
	if m < 0 {
		return 0
	}
	return m
}

// =============================================================================
// RATE CONFIG
// =============================================================================

// RateConfig carries the rates and window bounds for one calculation.
// Optional fields follow the nullable convention: a nil hour pointer or a
// non-positive premium rate means "use the default".
type RateConfig struct {
	// BaseHourlyRate is the standard rate outside the premium window.
	// Zero is tolerated and yields zero pay.
	BaseHourlyRate decimal.Decimal

	// PremiumHourlyRate applies inside the premium window.
	// Non-positive means BaseHourlyRate x 1.5.
	PremiumHourlyRate decimal.Decimal

	// WindowStartHour is the Friday opening hour (0-23). nil means 15.
	WindowStartHour *int

	// WindowEndHour is the Sunday closing hour (0-23). nil means 5.
	WindowEndHour *int
}

// windowHours resolves the configured window bounds with defaults applied.
func (rc RateConfig) windowHours() (startHour, endHour int) {
	startHour = DefaultWindowStartHour
	if rc.WindowStartHour != nil {
		startHour = *rc.WindowStartHour
	}
	endHour = DefaultWindowEndHour
	if rc.WindowEndHour != nil {
		endHour = *rc.WindowEndHour
	}
	return startHour, endHour
}

// EffectivePremiumRate returns the configured premium rate, or the derived
// base x 1.5 fallback when the configured rate is absent or non-positive.
func (rc RateConfig) EffectivePremiumRate() decimal.Decimal {
	if rc.PremiumHourlyRate.IsPositive() {
		return rc.PremiumHourlyRate
	}
	return rc.BaseHourlyRate.Mul(premiumMultiplier)
}

// =============================================================================
// RESULTS
// =============================================================================

// WageResult is the computed pay for one shift.
// RegularMinutes + PremiumMinutes always equals the total shift minutes.
type WageResult struct {
	RegularMinutes int64
	PremiumMinutes int64
	RegularPay     decimal.Decimal
	PremiumPay     decimal.Decimal
	TotalPay       decimal.Decimal
}

// Overtime is the linear overtime component added on top of a WageResult.
// A zero value means "no overtime".
type Overtime struct {
	Hours decimal.Decimal
	Rate  decimal.Decimal
	Pay   decimal.Decimal
}

func zeroResult() WageResult {
	return WageResult{
		RegularPay: decimal.Zero,
		PremiumPay: decimal.Zero,
		TotalPay:   decimal.Zero,
	}
}
