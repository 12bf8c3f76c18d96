/*
salary.go - Dashboard summary, history and net-salary endpoints

PURPOSE:
  Aggregates stored shifts into the month/week dashboard figures and
  exposes the net-salary calculator.

ENDPOINTS:
  GET  /api/summary      Month/week hours, expected salary, tips, recents
  GET  /api/history      Shift history, optionally for one ?month=2006-01
  POST /api/salary/net   Deduction breakdown for a gross monthly salary

ACCOUNTING BOUNDARIES:
  The pay month starts on the 1st at 06:29 and the pay week on Sunday at
  06:29 - a night shift that runs past midnight into the 1st (or into
  Sunday) still counts toward the period it started in. Before the
  boundary, the previous period is still the current one.

PARTIAL FAILURE:
  The net breakdown embedded in the summary is best-effort: a failure
  inside the tax computation is logged and the summary is served with
  net_breakdown null rather than failing the whole response.

SEE ALSO:
  - tax: The deduction breakdown engine
  - handlers.go: Identity and rate resolution
*/
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dxp/hourtracker/store/sqlite"
	"github.com/dxp/hourtracker/tax"
)

// Accounting periods open at 06:29, not midnight.
const (
	boundaryHour   = 6
	boundaryMinute = 29
)

// recentShiftCount limits the dashboard's recent-shifts list.
const recentShiftCount = 5

// =============================================================================
// SUMMARY
// =============================================================================

// Summary returns the dashboard aggregates for the caller. Guests get a
// zeroed summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusOK, SummaryDTO{RecentShifts: []ShiftDTO{}})
		return
	}

	ctx := r.Context()
	now := h.Now()

	_, rates, err := h.resolveRates(ctx, uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}

	monthBoundary := monthStartBoundary(now)
	endOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1)
	monthShifts, err := h.Store.ListShifts(ctx, uid, monthBoundary, endOfMonth)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	weekBoundary := weekStartBoundary(now)
	weekShifts, err := h.Store.ListShifts(ctx, uid, weekBoundary, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	var monthHours, expectedSalary, tips float64
	var monthCount int
	for _, sh := range monthShifts {
		if shiftStart(sh).Before(monthBoundary) {
			continue
		}
		monthHours += sh.Hours
		expectedSalary += sh.Salary
		tips += sh.TipAmount
		monthCount++
	}

	var weekHours float64
	for _, sh := range weekShifts {
		if shiftStart(sh).Before(weekBoundary) {
			continue
		}
		weekHours += sh.Hours
	}

	recent, err := h.Store.ListRecentShifts(ctx, uid, recentShiftCount)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}
	recentDTOs := make([]ShiftDTO, len(recent))
	for i, sh := range recent {
		recentDTOs[i] = shiftDTO(sh)
	}

	breakdown := h.safeBreakdown(decimal.NewFromFloat(expectedSalary), tax.Modifiers{PaysTax: true})

	writeJSON(w, http.StatusOK, SummaryDTO{
		MonthHours:      monthHours,
		WeekHours:       weekHours,
		HourlyRate:      rates.Hourly,
		ExpectedSalary:  expectedSalary,
		TipsThisMonth:   tips,
		ShiftsThisMonth: monthCount,
		RecentShifts:    recentDTOs,
		NetBreakdown:    netSalaryDTO(breakdown),
	})
}

// History returns the caller's shifts, optionally limited to one calendar
// month via ?month=2006-01.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusOK, []ShiftDTO{})
		return
	}

	var (
		shifts []sqlite.Shift
		err    error
	)
	if month := r.URL.Query().Get("month"); month != "" {
		var from time.Time
		from, err = time.Parse("2006-01", month)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid month, want YYYY-MM", err)
			return
		}
		shifts, err = h.Store.ListShifts(r.Context(), uid, from, from.AddDate(0, 1, -1))
	} else {
		shifts, err = h.Store.ListAllShifts(r.Context(), uid)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	dtos := make([]ShiftDTO, len(shifts))
	for i, sh := range shifts {
		dtos[i] = shiftDTO(sh)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// NET SALARY
// =============================================================================

// NetSalary computes the deduction breakdown for a gross monthly salary.
// The calculator is pure; no identity is required.
func (h *Handler) NetSalary(w http.ResponseWriter, r *http.Request) {
	var req NetSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	mods := tax.Modifiers{
		PaysTax:          req.PaysTax,
		PensionEnabled:   req.PensionEnabled,
		StudyFundEnabled: req.StudyFundEnabled,
		IsFemale:         req.IsFemale,
		IsExSoldier:      req.IsExSoldier,
	}
	if req.DischargeDate != nil {
		d, err := time.Parse(dateLayout, *req.DischargeDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid discharge_date, want YYYY-MM-DD", err)
			return
		}
		mods.DischargeDate = &d
	}

	breakdown := h.safeBreakdown(decimal.NewFromFloat(req.GrossSalary), mods)
	if breakdown == nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute breakdown", nil)
		return
	}
	writeJSON(w, http.StatusOK, netSalaryDTO(breakdown))
}

// safeBreakdown shields callers from a failure inside the tax computation;
// a panic is logged and reported as a nil breakdown.
func (h *Handler) safeBreakdown(gross decimal.Decimal, mods tax.Modifiers) (b *tax.Breakdown) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("net salary breakdown failed: %v", rec)
			b = nil
		}
	}()

	result := tax.ComputeBreakdown(gross, mods, h.TaxPolicy, h.Now())
	return &result
}

func netSalaryDTO(b *tax.Breakdown) *NetSalaryDTO {
	if b == nil {
		return nil
	}
	points, _ := b.CreditPoints.Float64()
	return &NetSalaryDTO{
		GrossSalary:           money(b.GrossSalary),
		PensionDeduction:      money(b.PensionDeduction),
		StudyFundDeduction:    money(b.StudyFundDeduction),
		BituachLeumiDeduction: money(b.BituachLeumiDeduction),
		CreditPoints:          points,
		CreditDiscount:        money(b.CreditDiscount),
		IncomeTaxDeduction:    money(b.IncomeTaxDeduction),
		TotalDeductions:       money(b.TotalDeductions),
		NetSalary:             money(b.NetSalary),
	}
}

// =============================================================================
// PERIOD BOUNDARIES
// =============================================================================

// monthStartBoundary returns the 1st of the pay month at 06:29. Before that
// instant the previous month is still open.
func monthStartBoundary(now time.Time) time.Time {
	boundary := time.Date(now.Year(), now.Month(), 1,
		boundaryHour, boundaryMinute, 0, 0, now.Location())
	if now.Before(boundary) {
		boundary = boundary.AddDate(0, -1, 0)
	}
	return boundary
}

// weekStartBoundary returns the most recent Sunday at 06:29, stepping a
// week back when that instant is still ahead.
func weekStartBoundary(now time.Time) time.Time {
	sunday := now.AddDate(0, 0, -int(now.Weekday()))
	boundary := time.Date(sunday.Year(), sunday.Month(), sunday.Day(),
		boundaryHour, boundaryMinute, 0, 0, now.Location())
	if now.Before(boundary) {
		boundary = boundary.AddDate(0, 0, -7)
	}
	return boundary
}

// shiftStart combines a shift's date and start clock into one instant.
func shiftStart(sh sqlite.Shift) time.Time {
	clock, err := parseClock(sh.StartTime)
	if err != nil {
		return sh.Date
	}
	return onDate(sh.Date, clock)
}
