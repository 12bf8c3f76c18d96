/*
salary_test.go - Tests for summary, history and net-salary endpoints

The pinned clock is Monday 2026-01-05 16:00, so the pay month opened
January 1st 06:29 and the pay week Sunday January 4th 06:29.
*/
package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_MonthAndWeekAggregates(t *testing.T) {
	// GIVEN: A shift this week (Mon Jan 5, 7h/408) and one last week but
	//        inside the pay month (Fri Jan 2, 3h/204), with a 50 tip
	// THEN: Month counts both, week counts only Monday's

	_, router := newTestRouter(t)

	monday := createShift(t, router, "u-1", ShiftRequest{
		ShiftCode: "MORNING", Date: "2026-01-05", StartTime: "08:00", EndTime: "16:00",
	})
	createShift(t, router, "u-1", ShiftRequest{
		ShiftCode: "MORNING", Date: "2026-01-02", StartTime: "08:00", EndTime: "12:00",
	})
	doJSON(t, router, http.MethodPost, "/api/shifts/"+monday.ID+"/tip", "u-1", TipRequest{TipAmount: 50}, nil)

	var summary SummaryDTO
	rec := doJSON(t, router, http.MethodGet, "/api/summary", "u-1", nil, &summary)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 10.0, summary.MonthHours)
	assert.Equal(t, 7.0, summary.WeekHours)
	assert.Equal(t, 612.0, summary.ExpectedSalary) // 408 + 204
	assert.Equal(t, 50.0, summary.TipsThisMonth)
	assert.Equal(t, 2, summary.ShiftsThisMonth)
	assert.Equal(t, 51.0, summary.HourlyRate)
	assert.Len(t, summary.RecentShifts, 2)

	// The embedded breakdown runs on the expected salary: only social
	// insurance bites at this level (612 x 4.27%).
	require.NotNil(t, summary.NetBreakdown)
	assert.Equal(t, 26.13, summary.NetBreakdown.BituachLeumiDeduction)
	assert.Equal(t, 585.87, summary.NetBreakdown.NetSalary)
}

func TestSummary_Guest(t *testing.T) {
	_, router := newTestRouter(t)

	var summary SummaryDTO
	rec := doJSON(t, router, http.MethodGet, "/api/summary", "", nil, &summary)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Zero(t, summary.MonthHours)
	assert.Empty(t, summary.RecentShifts)
	assert.Nil(t, summary.NetBreakdown)
}

func TestSummary_EarlyMorningBeforeBoundary(t *testing.T) {
	// GIVEN: The clock reads Sunday 05:00, before the 06:29 week boundary
	// THEN: The pay week is still the previous one

	h, router := newTestRouter(t)
	h.Now = func() time.Time {
		return time.Date(2026, time.January, 4, 5, 0, 0, 0, time.UTC)
	}

	// Friday Jan 2 belongs to the still-open pay week (since Dec 28).
	createShift(t, router, "u-1", ShiftRequest{
		ShiftCode: "MORNING", Date: "2026-01-02", StartTime: "08:00", EndTime: "12:00",
	})

	var summary SummaryDTO
	doJSON(t, router, http.MethodGet, "/api/summary", "u-1", nil, &summary)

	assert.Equal(t, 3.0, summary.WeekHours)
	assert.Equal(t, 3.0, summary.MonthHours)
}

func TestHistory_MonthFilter(t *testing.T) {
	_, router := newTestRouter(t)

	createShift(t, router, "u-1", ShiftRequest{
		ShiftCode: "MORNING", Date: "2026-01-05", StartTime: "08:00", EndTime: "16:00",
	})
	createShift(t, router, "u-1", ShiftRequest{
		ShiftCode: "MORNING", Date: "2026-02-03", StartTime: "08:00", EndTime: "16:00",
	})

	var all []ShiftDTO
	doJSON(t, router, http.MethodGet, "/api/history", "u-1", nil, &all)
	assert.Len(t, all, 2)

	var january []ShiftDTO
	rec := doJSON(t, router, http.MethodGet, "/api/history?month=2026-01", "u-1", nil, &january)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, january, 1)
	assert.Equal(t, "2026-01-05", january[0].Date)

	rec = doJSON(t, router, http.MethodGet, "/api/history?month=notamonth", "u-1", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNetSalary_FullBreakdown(t *testing.T) {
	// 10000 gross with every deduction on; figures match the tax engine.
	_, router := newTestRouter(t)

	var got NetSalaryDTO
	rec := doJSON(t, router, http.MethodPost, "/api/salary/net", "", NetSalaryRequest{
		GrossSalary: 10000, PaysTax: true, PensionEnabled: true, StudyFundEnabled: true,
	}, &got)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 600.0, got.PensionDeduction)
	assert.Equal(t, 250.0, got.StudyFundDeduction)
	assert.Equal(t, 608.46, got.BituachLeumiDeduction)
	assert.Equal(t, 2.25, got.CreditPoints)
	assert.Equal(t, 575.10, got.IncomeTaxDeduction)
	assert.Equal(t, 7966.44, got.NetSalary)
}

func TestNetSalary_ExSoldierDischargeDate(t *testing.T) {
	_, router := newTestRouter(t)

	var got NetSalaryDTO
	doJSON(t, router, http.MethodPost, "/api/salary/net", "", NetSalaryRequest{
		GrossSalary: 10000, PaysTax: true, IsExSoldier: true,
		DischargeDate: strPtr("2025-06-01"),
	}, &got)
	assert.Equal(t, 4.25, got.CreditPoints)

	rec := doJSON(t, router, http.MethodPost, "/api/salary/net", "", NetSalaryRequest{
		GrossSalary: 10000, PaysTax: true, IsExSoldier: true,
		DischargeDate: strPtr("June 2025"),
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
