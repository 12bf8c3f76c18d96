/*
shifts.go - Shift templates and shift lifecycle endpoints

PURPOSE:
  Orchestrates one worked shift from request payload to stored row:
  parses times, resolves the shift template and the user's rates, runs the
  wage engine and persists the computed pay.

ENDPOINTS:
  GET    /api/shift-types        List shift templates
  POST   /api/shifts             Create a shift
  PUT    /api/shifts/{id}        Update a shift (recomputes pay)
  POST   /api/shifts/{id}/end    Close an open shift at the current time
  POST   /api/shifts/{id}/tip    Record the tip for a shift
  DELETE /api/shifts/{id}        Delete a shift

PAY MODEL:
  Hours tracked deduct the template's unpaid break; pay does not - the
  wage engine runs over the full interval, matching how the house pays.
  Manual overtime is added linearly on top, and the stored salary column
  is the combined total.

SEE ALSO:
  - wage: The pure pay computation
  - store/sqlite: Shift templates and rows
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dxp/hourtracker/store/sqlite"
	"github.com/dxp/hourtracker/wage"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// =============================================================================
// SHIFT TEMPLATES
// =============================================================================

// ListShiftTypes returns the shift templates: the system defaults, or a
// workplace's own set when ?workplace_id= is given.
func (h *Handler) ListShiftTypes(w http.ResponseWriter, r *http.Request) {
	var workplaceID *string
	if wp := r.URL.Query().Get("workplace_id"); wp != "" {
		workplaceID = &wp
	}

	types, err := h.Store.ListShiftTypes(r.Context(), workplaceID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shift types", err)
		return
	}

	dtos := make([]ShiftTypeDTO, len(types))
	for i, st := range types {
		dtos[i] = ShiftTypeDTO{
			Code:               st.Code,
			Name:               st.Name,
			DefaultStart:       st.DefaultStart,
			DefaultEnd:         st.DefaultEnd,
			DefaultHours:       st.DefaultHours,
			UnpaidBreakMinutes: st.UnpaidBreakMinutes,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SHIFT LIFECYCLE
// =============================================================================

// CreateShift records a new worked shift and computes its pay.
func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Sign in to record shifts", nil)
		return
	}

	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ShiftCode == "" || req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		writeError(w, http.StatusBadRequest, "shift_code, date, start_time and end_time are required", nil)
		return
	}

	shiftType, err := h.Store.GetShiftTypeByCode(r.Context(), req.ShiftCode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up shift type", err)
		return
	}
	if shiftType == nil {
		writeError(w, http.StatusBadRequest, "Unknown shift type: "+req.ShiftCode, nil)
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	sh, err := h.saveShiftWithCalculations(r, uid, date, req.StartTime, req.EndTime, shiftType, req, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to save shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, shiftDTO(*sh))
}

// UpdateShift edits a stored shift and recomputes its pay. Absent fields
// keep the stored values.
func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	existing, ok := h.ownedShift(w, r, uid)
	if !ok {
		return
	}

	var req ShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var shiftType *sqlite.ShiftType
	var err error
	if req.ShiftCode != "" {
		shiftType, err = h.Store.GetShiftTypeByCode(r.Context(), req.ShiftCode)
	} else {
		// The stored row only carries the display name.
		shiftType, err = h.Store.GetShiftTypeByName(r.Context(), existing.ShiftType)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up shift type", err)
		return
	}
	if shiftType == nil {
		writeError(w, http.StatusBadRequest, "Shift type configuration not found", nil)
		return
	}

	date := existing.Date
	if req.Date != "" {
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return
		}
	}
	startStr := existing.StartTime
	if req.StartTime != "" {
		startStr = req.StartTime
	}
	endStr := existing.EndTime
	if req.EndTime != "" {
		endStr = req.EndTime
	}

	sh, err := h.saveShiftWithCalculations(r, uid, date, startStr, endStr, shiftType, req, existing)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to save shift", err)
		return
	}
	writeJSON(w, http.StatusOK, shiftDTO(*sh))
}

// EndShift closes an open shift at the current wall-clock time, keeping any
// manual overtime and tip already recorded.
func (h *Handler) EndShift(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	existing, ok := h.ownedShift(w, r, uid)
	if !ok {
		return
	}

	shiftType, err := h.Store.GetShiftTypeByName(r.Context(), existing.ShiftType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up shift type", err)
		return
	}
	if shiftType == nil {
		writeError(w, http.StatusBadRequest, "Shift type configuration not found", nil)
		return
	}

	endStr := h.Now().Format(clockLayout)
	req := ShiftRequest{
		OvertimeHours:      existing.OvertimeHours,
		OvertimeHourlyRate: existing.OvertimeHourlyRate,
	}

	sh, err := h.saveShiftWithCalculations(r, uid, existing.Date, existing.StartTime, endStr, shiftType, req, existing)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to save shift", err)
		return
	}
	writeJSON(w, http.StatusOK, shiftDTO(*sh))
}

// SetTip records the tip on a shift. Tips ride along the shift row and are
// reported separately from salary.
func (h *Handler) SetTip(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	existing, ok := h.ownedShift(w, r, uid)
	if !ok {
		return
	}

	var req TipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.TipAmount < 0 {
		writeError(w, http.StatusBadRequest, "Tip must not be negative", nil)
		return
	}

	existing.TipAmount = req.TipAmount
	if err := h.Store.SaveShift(r.Context(), existing); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save shift", err)
		return
	}
	writeJSON(w, http.StatusOK, shiftDTO(*existing))
}

// DeleteShift removes a shift.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	existing, ok := h.ownedShift(w, r, uid)
	if !ok {
		return
	}

	if err := h.Store.DeleteShift(r.Context(), existing.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete shift", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ownedShift loads the {id} shift and enforces that the caller owns it.
// On failure the response is already written and ok is false.
func (h *Handler) ownedShift(w http.ResponseWriter, r *http.Request, uid string) (*sqlite.Shift, bool) {
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Sign in to manage shifts", nil)
		return nil, false
	}

	id := chi.URLParam(r, "id")
	sh, err := h.Store.GetShift(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shift", err)
		return nil, false
	}
	if sh == nil {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return nil, false
	}
	if sh.UserID != uid {
		writeError(w, http.StatusForbidden, "Not your shift", nil)
		return nil, false
	}
	return sh, true
}

// =============================================================================
// SHIFT COMPUTATION
// =============================================================================

// saveShiftWithCalculations runs the full pipeline for one shift: parse
// times, deduct the template break from tracked hours, compute base pay over
// the interval, add manual overtime, carry the tip, persist.
func (h *Handler) saveShiftWithCalculations(r *http.Request, uid string, date time.Time,
	startStr, endStr string, shiftType *sqlite.ShiftType, req ShiftRequest,
	existing *sqlite.Shift) (*sqlite.Shift, error) {

	ctx := r.Context()

	startClock, err := parseClock(startStr)
	if err != nil {
		return nil, err
	}
	endClock, err := parseClock(endStr)
	if err != nil {
		return nil, err
	}

	// An end before the start means the shift crosses midnight; the wage
	// engine normalizes the interval itself.
	interval := wage.ShiftInterval{
		Start: onDate(date, startClock),
		End:   onDate(date, endClock),
	}

	grossMinutes := interval.Minutes()
	netMinutes := grossMinutes - int64(shiftType.UnpaidBreakMinutes)
	if netMinutes < 0 {
		netMinutes = 0
	}
	hours := float64(netMinutes) / 60.0

	settings, rates, err := h.resolveRates(ctx, uid)
	if err != nil {
		return nil, err
	}

	base := wage.ComputeShiftPay(interval, wage.RateConfig{
		BaseHourlyRate:    decimal.NewFromFloat(rates.Hourly),
		PremiumHourlyRate: decimal.NewFromFloat(rates.Shabbat),
	})

	var (
		overtimeHours *float64
		overtimeRate  *float64
		overtime      wage.Overtime
	)
	if req.OvertimeHours != nil && *req.OvertimeHours > 0 {
		explicit := decimal.Zero
		if req.OvertimeHourlyRate != nil {
			explicit = decimal.NewFromFloat(*req.OvertimeHourlyRate)
		}
		stored := decimal.Zero
		if settings != nil && settings.OvertimeHourlyRate > 0 {
			stored = decimal.NewFromFloat(settings.OvertimeHourlyRate)
		}
		overtime = wage.ComputeOvertime(
			decimal.NewFromFloat(*req.OvertimeHours),
			explicit, stored, decimal.NewFromFloat(rates.Hourly))

		oh, _ := overtime.Hours.Float64()
		orate := money(overtime.Rate)
		overtimeHours = &oh
		overtimeRate = &orate
	}

	tip := 0.0
	switch {
	case req.TipAmount != nil:
		tip = *req.TipAmount
	case existing != nil:
		tip = existing.TipAmount
	}

	otHours := 0.0
	if overtimeHours != nil {
		otHours = *overtimeHours
	}

	sh := &sqlite.Shift{
		UserID:             uid,
		Date:               date,
		StartTime:          startClock.Format(clockLayout),
		EndTime:            endClock.Format(clockLayout),
		ShiftType:          shiftType.Name,
		Hours:              hours + otHours,
		Salary:             money(base.TotalPay.Add(overtime.Pay)),
		OvertimeHours:      overtimeHours,
		OvertimeHourlyRate: overtimeRate,
		OvertimeSalary:     money(overtime.Pay),
		TipAmount:          tip,
	}
	if existing != nil {
		sh.ID = existing.ID
	}

	if err := h.Store.SaveShift(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

// parseClock accepts "15:04" and "15:04:05" clock strings.
func parseClock(s string) (time.Time, error) {
	for _, layout := range []string{clockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid clock time %q", s)
}

// onDate places a parsed clock time on a calendar date.
func onDate(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}

func shiftDTO(sh sqlite.Shift) ShiftDTO {
	return ShiftDTO{
		ID:                 sh.ID,
		Date:               sh.Date.Format(dateLayout),
		StartTime:          sh.StartTime,
		EndTime:            sh.EndTime,
		ShiftType:          sh.ShiftType,
		Hours:              sh.Hours,
		Salary:             sh.Salary,
		OvertimeHours:      sh.OvertimeHours,
		OvertimeHourlyRate: sh.OvertimeHourlyRate,
		OvertimeSalary:     sh.OvertimeSalary,
		TipAmount:          sh.TipAmount,
	}
}
