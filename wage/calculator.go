/*
calculator.go - Premium-aware shift pay computation

PURPOSE:
  Splits a shift into regular-rate and premium-rate minutes by intersecting
  the shift interval with the weekly premium window, then prices each side.

ALGORITHM:
  1. Normalize the interval for midnight crossing
  2. Resolve the governing window opening (see window.go)
  3. Overlap = [max(start, open), min(end, close)], clamped at zero
  4. regular = total - premium; price each at its rate

KNOWN LIMITATION:
  The overlap is computed against a single window occurrence. That is
  sufficient because the window recurs weekly and shifts are short; a shift
  spanning more than one full weekly cycle would be split incorrectly. This
  is deliberately not validated.

ERROR POLICY:
  Never errors. Non-positive durations yield a zero result, a missing
  premium rate falls back to base x 1.5, and negative rates propagate
  arithmetically. Validation belongs to the caller.
*/
package wage

import (
	"time"

	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// ComputeShiftPay computes pay for one shift interval under the given rates.
func ComputeShiftPay(interval ShiftInterval, rates RateConfig) WageResult {
	interval = interval.Normalized()

	totalMinutes := int64(interval.End.Sub(interval.Start) / time.Minute)
	if totalMinutes <= 0 {
		return zeroResult()
	}

	startHour, endHour := rates.windowHours()
	premiumMinutes := premiumOverlapMinutes(interval, startHour, endHour)
	regularMinutes := totalMinutes - premiumMinutes

	regularPay := payFor(regularMinutes, rates.BaseHourlyRate)
	premiumPay := payFor(premiumMinutes, rates.EffectivePremiumRate())

	return WageResult{
		RegularMinutes: regularMinutes,
		PremiumMinutes: premiumMinutes,
		RegularPay:     regularPay,
		PremiumPay:     premiumPay,
		TotalPay:       regularPay.Add(premiumPay),
	}
}

// premiumOverlapMinutes intersects the shift with the governing premium
// window occurrence and returns the overlap in whole minutes.
func premiumOverlapMinutes(interval ShiftInterval, startHour, endHour int) int64 {
	open := ResolveWindowStart(interval.Start, startHour, endHour)
	close := WindowClose(open, endHour)

	overlapStart := interval.Start
	if open.After(overlapStart) {
		overlapStart = open
	}
	overlapEnd := interval.End
	if close.Before(overlapEnd) {
		overlapEnd = close
	}

	if overlapStart.After(overlapEnd) {
		return 0
	}
	return int64(overlapEnd.Sub(overlapStart) / time.Minute)
}

// payFor prices a minute count at an hourly rate, full precision.
func payFor(minutes int64, hourlyRate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(minutes).Div(minutesPerHour).Mul(hourlyRate)
}

// =============================================================================
// OVERTIME - linear add-on, outside the premium computation
// =============================================================================

// ComputeOvertime resolves the overtime component added on top of the
// premium-aware shift pay. Overtime hours are manual input, not derived from
// the interval.
//
// Rate fallback chain: explicit rate from the request, then the stored
// per-user override, then base x 1.25. Absent or non-positive hours
// normalize to an all-zero component so downstream totals stay defined.
func ComputeOvertime(hours, explicitRate, storedRate, baseHourlyRate decimal.Decimal) Overtime {
	if !hours.IsPositive() {
		return Overtime{Hours: decimal.Zero, Rate: decimal.Zero, Pay: decimal.Zero}
	}

	rate := explicitRate
	if !rate.IsPositive() {
		rate = storedRate
	}
	if !rate.IsPositive() {
		rate = baseHourlyRate.Mul(overtimeMultiplier)
	}

	return Overtime{Hours: hours, Rate: rate, Pay: hours.Mul(rate)}
}
