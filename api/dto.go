/*
dto.go - Request and response data structures

PURPOSE:
  Defines the JSON shapes exchanged with clients, separate from the
  storage entities. DTOs round money to 2 decimals for display; the
  engines underneath keep full precision.

CONVENTIONS:
  - snake_case JSON field names
  - Dates as "2006-01-02", clock times as "15:04"
  - Optional request fields are pointers; nil means "not provided"
    (distinct from an explicit zero)

SEE ALSO:
  - handlers.go: User identity and settings handlers
  - shifts.go: Shift orchestration handlers
  - salary.go: Summary and net-salary handlers
*/
package api

// =============================================================================
// SHIFT DTOS
// =============================================================================

// ShiftRequest is the create/update payload for a shift. On update, absent
// date/time fields keep the stored values.
type ShiftRequest struct {
	ShiftCode string `json:"shift_code"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	OvertimeHours      *float64 `json:"overtime_hours"`
	OvertimeHourlyRate *float64 `json:"overtime_hourly_rate"`
	TipAmount          *float64 `json:"tip_amount"`
}

// ShiftDTO is one stored shift with its computed pay.
type ShiftDTO struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	ShiftType string  `json:"shift_type"`
	Hours     float64 `json:"hours"`
	Salary    float64 `json:"salary"`

	OvertimeHours      *float64 `json:"overtime_hours,omitempty"`
	OvertimeHourlyRate *float64 `json:"overtime_hourly_rate,omitempty"`
	OvertimeSalary     float64  `json:"overtime_salary"`
	TipAmount          float64  `json:"tip_amount"`
}

// ShiftTypeDTO is a shift template offered to the client.
type ShiftTypeDTO struct {
	Code               string  `json:"code"`
	Name               string  `json:"name"`
	DefaultStart       string  `json:"default_start"`
	DefaultEnd         string  `json:"default_end"`
	DefaultHours       float64 `json:"default_hours"`
	UnpaidBreakMinutes int     `json:"unpaid_break_minutes"`
}

// TipRequest sets the tip recorded on a shift.
type TipRequest struct {
	TipAmount float64 `json:"tip_amount"`
}

// =============================================================================
// USER AND SETTINGS DTOS
// =============================================================================

// SettingsDTO is the resolved rate configuration: the fallback chain is
// already applied, so every rate field carries an effective value.
type SettingsDTO struct {
	HourlyRate         float64 `json:"hourly_rate"`
	OvertimeHourlyRate float64 `json:"overtime_hourly_rate"`
	ShabbatHourlyRate  float64 `json:"shabbat_hourly_rate"`

	IsPremium        bool    `json:"is_premium"`
	PremiumExpiresAt *string `json:"premium_expires_at,omitempty"`
	ThemePreference  string  `json:"theme_preference"`
}

// UpdateSettingsRequest carries new settings values; absent fields keep the
// stored values.
type UpdateSettingsRequest struct {
	HourlyRate         *float64 `json:"hourly_rate"`
	OvertimeHourlyRate *float64 `json:"overtime_hourly_rate"`
	ShabbatHourlyRate  *float64 `json:"shabbat_hourly_rate"`
	ThemePreference    *string  `json:"theme_preference"`
}

// PremiumRequest extends the premium subscription.
type PremiumRequest struct {
	Days int `json:"days"`
}

// MeDTO is the authenticated user's profile with resolved settings.
type MeDTO struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"display_name"`
	Email       string      `json:"email"`
	IsPremium   bool        `json:"is_premium"`
	Settings    SettingsDTO `json:"settings"`
}

// =============================================================================
// SUMMARY AND SALARY DTOS
// =============================================================================

// SummaryDTO is the dashboard summary. NetBreakdown is null when the
// breakdown computation failed; the wage figures are still served.
type SummaryDTO struct {
	MonthHours      float64       `json:"month_hours"`
	WeekHours       float64       `json:"week_hours"`
	HourlyRate      float64       `json:"hourly_rate"`
	ExpectedSalary  float64       `json:"expected_salary"`
	TipsThisMonth   float64       `json:"tips_this_month"`
	ShiftsThisMonth int           `json:"shifts_this_month"`
	RecentShifts    []ShiftDTO    `json:"recent_shifts"`
	NetBreakdown    *NetSalaryDTO `json:"net_breakdown"`
}

// NetSalaryRequest asks for a deduction breakdown of one gross monthly
// salary. DischargeDate is "2006-01-02" and only read when IsExSoldier.
type NetSalaryRequest struct {
	GrossSalary      float64 `json:"gross_salary"`
	PaysTax          bool    `json:"pays_tax"`
	PensionEnabled   bool    `json:"pension_enabled"`
	StudyFundEnabled bool    `json:"study_fund_enabled"`
	IsFemale         bool    `json:"is_female"`
	IsExSoldier      bool    `json:"is_ex_soldier"`
	DischargeDate    *string `json:"discharge_date"`
}

// NetSalaryDTO is the computed deduction breakdown.
type NetSalaryDTO struct {
	GrossSalary           float64 `json:"gross_salary"`
	PensionDeduction      float64 `json:"pension_deduction"`
	StudyFundDeduction    float64 `json:"study_fund_deduction"`
	BituachLeumiDeduction float64 `json:"bituach_leumi_deduction"`
	CreditPoints          float64 `json:"credit_points"`
	CreditDiscount        float64 `json:"credit_discount"`
	IncomeTaxDeduction    float64 `json:"income_tax_deduction"`
	TotalDeductions       float64 `json:"total_deductions"`
	NetSalary             float64 `json:"net_salary"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
