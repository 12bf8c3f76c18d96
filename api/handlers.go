/*
handlers.go - HTTP handler context, identity and settings endpoints

PURPOSE:
  Exposes the hour tracker via REST. Handles HTTP request/response, JSON
  serialization, and delegates to the wage and tax engines.

ENDPOINTS (this file):
  GET    /api/me                 Profile with resolved settings
  GET    /api/settings           Resolved rate settings
  POST   /api/settings           Update rate settings
  POST   /api/settings/premium   Extend the premium subscription

IDENTITY:
  The authenticated user id arrives in the X-User-ID header, set by the
  reverse proxy after token validation. Requests without it are "guests":
  read endpoints answer with defaults, write endpoints answer 401.

RATE FALLBACK CHAIN:
  hourly:   settings value when positive, else the configured default
  overtime: settings value when positive, else hourly x 1.25
  shabbat:  settings value when positive, else hourly x 1.5

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 401: Missing identity on a write endpoint
  - 403: Acting on another user's shift
  - 404: Resource not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - shifts.go: Shift orchestration
  - salary.go: Summary and net-salary endpoints
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dxp/hourtracker/store/sqlite"
	"github.com/dxp/hourtracker/tax"
)

// Guest display name shown when no identity header is present.
const guestDisplayName = "אורח"

// defaultPremiumTrialDays is granted to a first-time user.
const defaultPremiumTrialDays = 7

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	TaxPolicy tax.Policy

	// DefaultHourlyRate anchors the rate fallback chain for users without
	// configured settings.
	DefaultHourlyRate float64

	// Now is the clock; tests pin it to a fixed instant.
	Now func() time.Time
}

// NewHandler creates a new handler with the given store and tax policy.
func NewHandler(store *sqlite.Store, policy tax.Policy, defaultHourlyRate float64) *Handler {
	return &Handler{
		Store:             store,
		TaxPolicy:         policy,
		DefaultHourlyRate: defaultHourlyRate,
		Now:               time.Now,
	}
}

// userID extracts the authenticated user id, or "" for a guest.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// =============================================================================
// RATE RESOLUTION
// =============================================================================

// resolvedRates is the effective rate set after the fallback chain.
type resolvedRates struct {
	Hourly   float64
	Overtime float64
	Shabbat  float64
}

// resolveRates loads a user's settings and applies the fallback chain.
// The returned settings pointer is nil when none are stored.
func (h *Handler) resolveRates(ctx context.Context, uid string) (*sqlite.UserSettings, resolvedRates, error) {
	var settings *sqlite.UserSettings
	if uid != "" {
		var err error
		settings, err = h.Store.GetSettings(ctx, uid)
		if err != nil {
			return nil, resolvedRates{}, err
		}
	}

	rates := resolvedRates{Hourly: h.DefaultHourlyRate}
	if settings != nil && settings.HourlyRate > 0 {
		rates.Hourly = settings.HourlyRate
	}
	rates.Overtime = rates.Hourly * 1.25
	if settings != nil && settings.OvertimeHourlyRate > 0 {
		rates.Overtime = settings.OvertimeHourlyRate
	}
	rates.Shabbat = rates.Hourly * 1.5
	if settings != nil && settings.ShabbatHourlyRate > 0 {
		rates.Shabbat = settings.ShabbatHourlyRate
	}
	return settings, rates, nil
}

func (h *Handler) settingsDTO(settings *sqlite.UserSettings, rates resolvedRates) SettingsDTO {
	dto := SettingsDTO{
		HourlyRate:         rates.Hourly,
		OvertimeHourlyRate: rates.Overtime,
		ShabbatHourlyRate:  rates.Shabbat,
		ThemePreference:    "default",
	}
	if settings != nil {
		dto.IsPremium = settings.IsPremium(h.Now())
		if settings.ThemePreference != "" {
			dto.ThemePreference = settings.ThemePreference
		}
		if settings.PremiumExpiresAt != nil {
			dto.PremiumExpiresAt = strPtr(settings.PremiumExpiresAt.Format(time.RFC3339))
		}
	}
	return dto
}

// =============================================================================
// PROFILE
// =============================================================================

// Me returns the caller's profile, creating the user row and default
// settings (with a premium trial) on first contact.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		// Guests get a synthetic profile with the default rates.
		_, rates, _ := h.resolveRates(r.Context(), "")
		writeJSON(w, http.StatusOK, MeDTO{
			DisplayName: guestDisplayName,
			Settings:    h.settingsDTO(nil, rates),
		})
		return
	}

	user := sqlite.User{
		ID:          uid,
		DisplayName: r.Header.Get("X-User-Name"),
		Email:       r.Header.Get("X-User-Email"),
	}
	if user.DisplayName == "" {
		user.DisplayName = uid
	}
	if err := h.Store.SaveUser(r.Context(), user); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save user", err)
		return
	}

	settings, rates, err := h.resolveRates(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	if settings == nil {
		trial := h.Now().AddDate(0, 0, defaultPremiumTrialDays)
		settings = &sqlite.UserSettings{
			UserID:             uid,
			HourlyRate:         rates.Hourly,
			OvertimeHourlyRate: rates.Overtime,
			ShabbatHourlyRate:  rates.Shabbat,
			PremiumExpiresAt:   &trial,
			ThemePreference:    "default",
		}
		if err := h.Store.SaveSettings(r.Context(), *settings); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to create settings", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, MeDTO{
		ID:          uid,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		IsPremium:   settings.IsPremium(h.Now()),
		Settings:    h.settingsDTO(settings, rates),
	})
}

// =============================================================================
// SETTINGS
// =============================================================================

// GetSettings returns the caller's resolved rate settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, rates, err := h.resolveRates(r.Context(), userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, h.settingsDTO(settings, rates))
}

// UpdateSettings stores new rate values. Absent fields keep their stored
// values; negative rates are rejected.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Sign in to change settings", nil)
		return
	}

	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	for _, rate := range []*float64{req.HourlyRate, req.OvertimeHourlyRate, req.ShabbatHourlyRate} {
		if rate != nil && *rate < 0 {
			writeError(w, http.StatusBadRequest, "Rates must not be negative", nil)
			return
		}
	}

	settings, _, err := h.resolveRates(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	if settings == nil {
		settings = &sqlite.UserSettings{UserID: uid, ThemePreference: "default"}
	}
	if req.HourlyRate != nil {
		settings.HourlyRate = *req.HourlyRate
	}
	if req.OvertimeHourlyRate != nil {
		settings.OvertimeHourlyRate = *req.OvertimeHourlyRate
	}
	if req.ShabbatHourlyRate != nil {
		settings.ShabbatHourlyRate = *req.ShabbatHourlyRate
	}
	if req.ThemePreference != nil {
		settings.ThemePreference = *req.ThemePreference
	}

	if err := h.Store.SaveSettings(r.Context(), *settings); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}

	_, rates, err := h.resolveRates(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, h.settingsDTO(settings, rates))
}

// ExtendPremium pushes the premium expiry forward. Days defaults to 30 and
// extension stacks on a still-active subscription.
func (h *Handler) ExtendPremium(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Sign in to manage premium", nil)
		return
	}

	var req PremiumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Days <= 0 {
		req.Days = 30
	}

	settings, _, err := h.resolveRates(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings", err)
		return
	}
	if settings == nil {
		settings = &sqlite.UserSettings{UserID: uid, ThemePreference: "default"}
	}

	from := h.Now()
	if settings.PremiumExpiresAt != nil && settings.PremiumExpiresAt.After(from) {
		from = *settings.PremiumExpiresAt
	}
	expiry := from.AddDate(0, 0, req.Days)
	settings.PremiumExpiresAt = &expiry

	if err := h.Store.SaveSettings(r.Context(), *settings); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save settings", err)
		return
	}

	_, rates, _ := h.resolveRates(r.Context(), uid)
	writeJSON(w, http.StatusOK, h.settingsDTO(settings, rates))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

func strPtr(s string) *string {
	return &s
}

// money rounds a decimal to the 2-decimal display value.
func money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
