/*
workplaces.go - Workplace endpoints

PURPOSE:
  Workplaces carry their own rates and premium window hours, and scope
  custom shift templates (see ListShiftTypes ?workplace_id=).

ENDPOINTS:
  GET  /api/workplaces        List the caller's workplaces
  POST /api/workplaces        Create or update a workplace
  GET  /api/workplaces/{id}   Get one workplace
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dxp/hourtracker/store/sqlite"
	"github.com/dxp/hourtracker/wage"
)

// WorkplaceDTO is one workplace with its rate and window configuration.
type WorkplaceDTO struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	HourlyRate         float64 `json:"hourly_rate"`
	OvertimeHourlyRate float64 `json:"overtime_hourly_rate"`
	ShabbatHourlyRate  float64 `json:"shabbat_hourly_rate"`
	ShabbatStartHour   int     `json:"shabbat_start_hour"`
	ShabbatEndHour     int     `json:"shabbat_end_hour"`
	Color              string  `json:"color"`
	IsDefault          bool    `json:"is_default"`
}

// WorkplaceRequest creates or (with ID set) updates a workplace. Absent
// window hours take the standard Friday 15:00 / Sunday 05:00 bounds.
type WorkplaceRequest struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	HourlyRate         float64 `json:"hourly_rate"`
	OvertimeHourlyRate float64 `json:"overtime_hourly_rate"`
	ShabbatHourlyRate  float64 `json:"shabbat_hourly_rate"`
	ShabbatStartHour   *int    `json:"shabbat_start_hour"`
	ShabbatEndHour     *int    `json:"shabbat_end_hour"`
	Color              string  `json:"color"`
	IsDefault          bool    `json:"is_default"`
}

// ListWorkplaces returns the caller's workplaces.
func (h *Handler) ListWorkplaces(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusOK, []WorkplaceDTO{})
		return
	}

	workplaces, err := h.Store.ListWorkplaces(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list workplaces", err)
		return
	}

	dtos := make([]WorkplaceDTO, len(workplaces))
	for i, wp := range workplaces {
		dtos[i] = workplaceDTO(wp)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWorkplace returns one workplace owned by the caller.
func (h *Handler) GetWorkplace(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Sign in to view workplaces", nil)
		return
	}

	wp, err := h.Store.GetWorkplace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get workplace", err)
		return
	}
	if wp == nil || wp.UserID != uid {
		writeError(w, http.StatusNotFound, "Workplace not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, workplaceDTO(*wp))
}

// SaveWorkplace creates or updates a workplace for the caller.
func (h *Handler) SaveWorkplace(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Sign in to manage workplaces", nil)
		return
	}

	var req WorkplaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	wp := sqlite.Workplace{
		ID:                 req.ID,
		UserID:             uid,
		Name:               req.Name,
		HourlyRate:         req.HourlyRate,
		OvertimeHourlyRate: req.OvertimeHourlyRate,
		ShabbatHourlyRate:  req.ShabbatHourlyRate,
		ShabbatStartHour:   wage.DefaultWindowStartHour,
		ShabbatEndHour:     wage.DefaultWindowEndHour,
		Color:              req.Color,
		IsDefault:          req.IsDefault,
	}
	if req.ShabbatStartHour != nil {
		wp.ShabbatStartHour = *req.ShabbatStartHour
	}
	if req.ShabbatEndHour != nil {
		wp.ShabbatEndHour = *req.ShabbatEndHour
	}

	if req.ID != "" {
		existing, err := h.Store.GetWorkplace(r.Context(), req.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to get workplace", err)
			return
		}
		if existing == nil || existing.UserID != uid {
			writeError(w, http.StatusNotFound, "Workplace not found", nil)
			return
		}
	}

	if err := h.Store.SaveWorkplace(r.Context(), &wp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save workplace", err)
		return
	}
	writeJSON(w, http.StatusCreated, workplaceDTO(wp))
}

func workplaceDTO(wp sqlite.Workplace) WorkplaceDTO {
	return WorkplaceDTO{
		ID:                 wp.ID,
		Name:               wp.Name,
		HourlyRate:         wp.HourlyRate,
		OvertimeHourlyRate: wp.OvertimeHourlyRate,
		ShabbatHourlyRate:  wp.ShabbatHourlyRate,
		ShabbatStartHour:   wp.ShabbatStartHour,
		ShabbatEndHour:     wp.ShabbatEndHour,
		Color:              wp.Color,
		IsDefault:          wp.IsDefault,
	}
}
