/*
Package sqlite provides the SQLite-backed persistence layer.

PURPOSE:
  Stores users, per-user settings, workplaces, shift type definitions and
  computed shifts. In production the same patterns apply to PostgreSQL -
  only minor SQL dialect differences.

KEY TABLES:
  users:        One row per authenticated person
  user_settings: Hourly/overtime/shabbat rates, premium expiry, theme
  workplaces:   Per-user workplaces carrying their own rates and window hours
  shift_types:  Named templates (morning/evening/night) with default times
                and unpaid break minutes
  shifts:       Worked shifts with the computed pay columns

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

MISSING ROWS:
  Get* methods return (nil, nil) for a missing row; callers decide whether
  that is an error.

MIGRATION:
  Schema is auto-migrated on New(). Seed shift types are inserted by
  SeedDefaultShiftTypes when the table has no system defaults.

USAGE:
  store, err := sqlite.New("./data/hourtracker.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store implements persistence for the hour tracker using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS user_settings (
		user_id TEXT PRIMARY KEY,
		hourly_rate REAL NOT NULL DEFAULT 0,
		overtime_hourly_rate REAL NOT NULL DEFAULT 0,
		shabbat_hourly_rate REAL NOT NULL DEFAULT 0,
		premium_expires_at TEXT,
		theme_preference TEXT NOT NULL DEFAULT 'default'
	);

	CREATE TABLE IF NOT EXISTS workplaces (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		hourly_rate REAL NOT NULL DEFAULT 0,
		overtime_hourly_rate REAL NOT NULL DEFAULT 0,
		shabbat_hourly_rate REAL NOT NULL DEFAULT 0,
		shabbat_start_hour INTEGER NOT NULL DEFAULT 15,
		shabbat_end_hour INTEGER NOT NULL DEFAULT 5,
		color TEXT NOT NULL DEFAULT '',
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_workplaces_user
		ON workplaces(user_id);

	CREATE TABLE IF NOT EXISTS shift_types (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL,
		workplace_id TEXT,
		name TEXT NOT NULL,
		default_start TEXT NOT NULL DEFAULT '',
		default_end TEXT NOT NULL DEFAULT '',
		default_hours REAL NOT NULL DEFAULT 0,
		unpaid_break_minutes INTEGER NOT NULL DEFAULT 0,
		sort_order INTEGER NOT NULL DEFAULT 100
	);

	-- One code per workplace; NULLs (system defaults) are each distinct in
	-- SQLite, so default codes are additionally guarded by seed logic.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_shift_types_code_workplace
		ON shift_types(code, workplace_id);

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		shift_type TEXT NOT NULL DEFAULT '',
		hours REAL NOT NULL DEFAULT 0,
		salary REAL NOT NULL DEFAULT 0,
		overtime_hours REAL,
		overtime_hourly_rate REAL,
		overtime_salary REAL NOT NULL DEFAULT 0,
		tip_amount REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Hot path: month/week summaries and history listings
	CREATE INDEX IF NOT EXISTS idx_shifts_user_date
		ON shifts(user_id, date DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ENTITIES
// =============================================================================

// User is one authenticated person, keyed by the external identity id.
type User struct {
	ID          string
	DisplayName string
	Email       string
	CreatedAt   time.Time
}

// UserSettings carries the per-user rate configuration and premium state.
// Zero rates mean "not configured"; callers apply defaults.
type UserSettings struct {
	UserID             string
	HourlyRate         float64
	OvertimeHourlyRate float64
	ShabbatHourlyRate  float64
	PremiumExpiresAt   *time.Time
	ThemePreference    string
}

// IsPremium reports whether the premium expiry is set and in the future.
func (us UserSettings) IsPremium(now time.Time) bool {
	return us.PremiumExpiresAt != nil && us.PremiumExpiresAt.After(now)
}

// Workplace is a per-user workplace with its own rates and premium window.
type Workplace struct {
	ID                 string
	UserID             string
	Name               string
	HourlyRate         float64
	OvertimeHourlyRate float64
	ShabbatHourlyRate  float64
	ShabbatStartHour   int
	ShabbatEndHour     int
	Color              string
	IsDefault          bool
	CreatedAt          time.Time
}

// ShiftType is a named shift template. WorkplaceID nil marks a system
// default available to everyone.
type ShiftType struct {
	ID                 string
	Code               string
	WorkplaceID        *string
	Name               string
	DefaultStart       string // "15:04"
	DefaultEnd         string
	DefaultHours       float64
	UnpaidBreakMinutes int
	SortOrder          int
}

// Shift is one worked interval with its computed pay columns.
// Date is the shift's nominal calendar day; an overnight shift keeps the
// start day as its date.
type Shift struct {
	ID                 string
	UserID             string
	Date               time.Time // date only
	StartTime          string    // "15:04"
	EndTime            string
	ShiftType          string
	Hours              float64
	Salary             float64
	OvertimeHours      *float64
	OvertimeHourlyRate *float64
	OvertimeSalary     float64
	TipAmount          float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

const (
	dateLayout = "2006-01-02"
)

// =============================================================================
// USERS
// =============================================================================

// SaveUser inserts or updates a user row.
func (s *Store) SaveUser(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO users (id, display_name, email, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			display_name = excluded.display_name,
			email = excluded.email
	`
	_, err := s.db.ExecContext(ctx, query,
		u.ID, u.DisplayName, u.Email, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetUser returns a user by id, or nil when absent.
func (s *Store) GetUser(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, email, created_at FROM users WHERE id = ?`, id)

	var u User
	var createdAt string
	if err := row.Scan(&u.ID, &u.DisplayName, &u.Email, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// =============================================================================
// USER SETTINGS
// =============================================================================

// SaveSettings inserts or updates the settings row for a user.
func (s *Store) SaveSettings(ctx context.Context, us UserSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO user_settings
			(user_id, hourly_rate, overtime_hourly_rate, shabbat_hourly_rate,
			 premium_expires_at, theme_preference)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			hourly_rate = excluded.hourly_rate,
			overtime_hourly_rate = excluded.overtime_hourly_rate,
			shabbat_hourly_rate = excluded.shabbat_hourly_rate,
			premium_expires_at = excluded.premium_expires_at,
			theme_preference = excluded.theme_preference
	`
	_, err := s.db.ExecContext(ctx, query,
		us.UserID, us.HourlyRate, us.OvertimeHourlyRate, us.ShabbatHourlyRate,
		nullTime(us.PremiumExpiresAt), us.ThemePreference)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetSettings returns the settings for a user, or nil when absent.
func (s *Store) GetSettings(ctx context.Context, userID string) (*UserSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, hourly_rate, overtime_hourly_rate, shabbat_hourly_rate,
		       premium_expires_at, theme_preference
		FROM user_settings WHERE user_id = ?`, userID)

	var us UserSettings
	var premium sql.NullString
	err := row.Scan(&us.UserID, &us.HourlyRate, &us.OvertimeHourlyRate,
		&us.ShabbatHourlyRate, &premium, &us.ThemePreference)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if premium.Valid {
		if t, perr := time.Parse(time.RFC3339, premium.String); perr == nil {
			us.PremiumExpiresAt = &t
		}
	}
	return &us, nil
}

// =============================================================================
// WORKPLACES
// =============================================================================

// SaveWorkplace inserts or updates a workplace. A missing ID is generated.
func (s *Store) SaveWorkplace(ctx context.Context, w *Workplace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	query := `
		INSERT INTO workplaces
			(id, user_id, name, hourly_rate, overtime_hourly_rate,
			 shabbat_hourly_rate, shabbat_start_hour, shabbat_end_hour,
			 color, is_default, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			hourly_rate = excluded.hourly_rate,
			overtime_hourly_rate = excluded.overtime_hourly_rate,
			shabbat_hourly_rate = excluded.shabbat_hourly_rate,
			shabbat_start_hour = excluded.shabbat_start_hour,
			shabbat_end_hour = excluded.shabbat_end_hour,
			color = excluded.color,
			is_default = excluded.is_default
	`
	_, err := s.db.ExecContext(ctx, query,
		w.ID, w.UserID, w.Name, w.HourlyRate, w.OvertimeHourlyRate,
		w.ShabbatHourlyRate, w.ShabbatStartHour, w.ShabbatEndHour,
		w.Color, w.IsDefault, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save workplace: %w", err)
	}
	return nil
}

// ListWorkplaces returns the workplaces of one user.
func (s *Store) ListWorkplaces(ctx context.Context, userID string) ([]Workplace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, hourly_rate, overtime_hourly_rate,
		       shabbat_hourly_rate, shabbat_start_hour, shabbat_end_hour,
		       color, is_default, created_at
		FROM workplaces WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workplaces: %w", err)
	}
	defer rows.Close()

	var result []Workplace
	for rows.Next() {
		var w Workplace
		var createdAt string
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.HourlyRate,
			&w.OvertimeHourlyRate, &w.ShabbatHourlyRate, &w.ShabbatStartHour,
			&w.ShabbatEndHour, &w.Color, &w.IsDefault, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan workplace: %w", err)
		}
		w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		result = append(result, w)
	}
	return result, rows.Err()
}

// GetWorkplace returns a workplace by id, or nil when absent.
func (s *Store) GetWorkplace(ctx context.Context, id string) (*Workplace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, hourly_rate, overtime_hourly_rate,
		       shabbat_hourly_rate, shabbat_start_hour, shabbat_end_hour,
		       color, is_default, created_at
		FROM workplaces WHERE id = ?`, id)

	var w Workplace
	var createdAt string
	err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.HourlyRate,
		&w.OvertimeHourlyRate, &w.ShabbatHourlyRate, &w.ShabbatStartHour,
		&w.ShabbatEndHour, &w.Color, &w.IsDefault, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workplace: %w", err)
	}
	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &w, nil
}

// =============================================================================
// SHIFT TYPES
// =============================================================================

// SaveShiftType inserts or updates a shift type. A missing ID is generated.
func (s *Store) SaveShiftType(ctx context.Context, st *ShiftType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID == "" {
		st.ID = uuid.NewString()
	}

	query := `
		INSERT INTO shift_types
			(id, code, workplace_id, name, default_start, default_end,
			 default_hours, unpaid_break_minutes, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			code = excluded.code,
			workplace_id = excluded.workplace_id,
			name = excluded.name,
			default_start = excluded.default_start,
			default_end = excluded.default_end,
			default_hours = excluded.default_hours,
			unpaid_break_minutes = excluded.unpaid_break_minutes,
			sort_order = excluded.sort_order
	`
	_, err := s.db.ExecContext(ctx, query,
		st.ID, st.Code, nullStringPtr(st.WorkplaceID), st.Name,
		st.DefaultStart, st.DefaultEnd, st.DefaultHours,
		st.UnpaidBreakMinutes, st.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to save shift type: %w", err)
	}
	return nil
}

// ListShiftTypes returns shift types for a workplace, or the system defaults
// when workplaceID is nil, ordered for display.
func (s *Store) ListShiftTypes(ctx context.Context, workplaceID *string) ([]ShiftType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		rows *sql.Rows
		err  error
	)
	base := `
		SELECT id, code, workplace_id, name, default_start, default_end,
		       default_hours, unpaid_break_minutes, sort_order
		FROM shift_types`
	if workplaceID == nil {
		rows, err = s.db.QueryContext(ctx, base+` WHERE workplace_id IS NULL ORDER BY sort_order, code`)
	} else {
		rows, err = s.db.QueryContext(ctx, base+` WHERE workplace_id = ? ORDER BY sort_order, code`, *workplaceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list shift types: %w", err)
	}
	defer rows.Close()

	var result []ShiftType
	for rows.Next() {
		st, err := scanShiftType(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	return result, rows.Err()
}

// GetShiftTypeByCode returns a system-default shift type by code, or nil.
func (s *Store) GetShiftTypeByCode(ctx context.Context, code string) (*ShiftType, error) {
	return s.getShiftType(ctx, `code = ? AND workplace_id IS NULL`, code)
}

// GetShiftTypeByName returns a shift type by display name, or nil.
func (s *Store) GetShiftTypeByName(ctx context.Context, name string) (*ShiftType, error) {
	return s.getShiftType(ctx, `name = ?`, name)
}

func (s *Store) getShiftType(ctx context.Context, where string, arg any) (*ShiftType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, code, workplace_id, name, default_start, default_end,
		       default_hours, unpaid_break_minutes, sort_order
		FROM shift_types WHERE `+where+` LIMIT 1`, arg)

	st, err := scanShiftType(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShiftType(r rowScanner) (ShiftType, error) {
	var st ShiftType
	var workplaceID sql.NullString
	err := r.Scan(&st.ID, &st.Code, &workplaceID, &st.Name, &st.DefaultStart,
		&st.DefaultEnd, &st.DefaultHours, &st.UnpaidBreakMinutes, &st.SortOrder)
	if err != nil {
		if err == sql.ErrNoRows {
			return ShiftType{}, err
		}
		return ShiftType{}, fmt.Errorf("failed to scan shift type: %w", err)
	}
	if workplaceID.Valid {
		st.WorkplaceID = &workplaceID.String
	}
	return st, nil
}

// SeedDefaultShiftTypes inserts the built-in shift templates when no system
// defaults exist yet. Times and break minutes follow the house rules:
// a 9h morning pays 8h (60m unpaid break), a night shift pays in full.
func (s *Store) SeedDefaultShiftTypes(ctx context.Context) error {
	existing, err := s.ListShiftTypes(ctx, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := []ShiftType{
		{Code: "MORNING", Name: "משמרת בוקר", DefaultStart: "06:30", DefaultEnd: "15:30", DefaultHours: 8.0, UnpaidBreakMinutes: 60, SortOrder: 10},
		{Code: "MIDDLE", Name: "משמרת מידל", DefaultStart: "12:00", DefaultEnd: "21:00", DefaultHours: 8.0, UnpaidBreakMinutes: 60, SortOrder: 20},
		{Code: "EVENING", Name: "משמרת ערב", DefaultStart: "14:30", DefaultEnd: "23:15", DefaultHours: 8.0, UnpaidBreakMinutes: 30, SortOrder: 30},
		{Code: "NIGHT", Name: "משמרת לילה", DefaultStart: "22:30", DefaultEnd: "07:15", DefaultHours: 8.45, UnpaidBreakMinutes: 0, SortOrder: 40},
		{Code: "7AM_UNTIL_4", Name: "07:30 - 16:30", DefaultStart: "07:30", DefaultEnd: "16:30", DefaultHours: 8.0, UnpaidBreakMinutes: 60, SortOrder: 50},
		{Code: "4PM_UNTIL_12", Name: "16:00 - 00:30", DefaultStart: "16:00", DefaultEnd: "00:30", DefaultHours: 8.0, UnpaidBreakMinutes: 30, SortOrder: 60},
	}
	for i := range defaults {
		if err := s.SaveShiftType(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// SHIFTS
// =============================================================================

// SaveShift inserts or updates a shift. A missing ID is generated.
func (s *Store) SaveShift(ctx context.Context, sh *Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sh.ID == "" {
		sh.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT INTO shifts
			(id, user_id, date, start_time, end_time, shift_type, hours, salary,
			 overtime_hours, overtime_hourly_rate, overtime_salary, tip_amount,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			shift_type = excluded.shift_type,
			hours = excluded.hours,
			salary = excluded.salary,
			overtime_hours = excluded.overtime_hours,
			overtime_hourly_rate = excluded.overtime_hourly_rate,
			overtime_salary = excluded.overtime_salary,
			tip_amount = excluded.tip_amount,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		sh.ID, sh.UserID, sh.Date.Format(dateLayout), sh.StartTime, sh.EndTime,
		sh.ShiftType, sh.Hours, sh.Salary,
		nullFloatPtr(sh.OvertimeHours), nullFloatPtr(sh.OvertimeHourlyRate),
		sh.OvertimeSalary, sh.TipAmount, now, now)
	if err != nil {
		return fmt.Errorf("failed to save shift: %w", err)
	}
	return nil
}

// GetShift returns a shift by id, or nil when absent.
func (s *Store) GetShift(ctx context.Context, id string) (*Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, shiftSelect+` WHERE id = ?`, id)
	sh, err := scanShift(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &sh, nil
}

// DeleteShift removes a shift by id.
func (s *Store) DeleteShift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// ListShifts returns a user's shifts with date in [from, to], newest first.
func (s *Store) ListShifts(ctx context.Context, userID string, from, to time.Time) ([]Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		shiftSelect+` WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY date DESC, start_time DESC`,
		userID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return collectShifts(rows)
}

// ListAllShifts returns every shift of a user, newest first.
func (s *Store) ListAllShifts(ctx context.Context, userID string) ([]Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		shiftSelect+` WHERE user_id = ? ORDER BY date DESC, start_time DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return collectShifts(rows)
}

// ListRecentShifts returns the newest shifts of a user, up to limit.
func (s *Store) ListRecentShifts(ctx context.Context, userID string, limit int) ([]Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		shiftSelect+` WHERE user_id = ? ORDER BY date DESC, start_time DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent shifts: %w", err)
	}
	return collectShifts(rows)
}

const shiftSelect = `
	SELECT id, user_id, date, start_time, end_time, shift_type, hours, salary,
	       overtime_hours, overtime_hourly_rate, overtime_salary, tip_amount,
	       created_at, updated_at
	FROM shifts`

func scanShift(r rowScanner) (Shift, error) {
	var sh Shift
	var date, createdAt, updatedAt string
	var otHours, otRate sql.NullFloat64
	err := r.Scan(&sh.ID, &sh.UserID, &date, &sh.StartTime, &sh.EndTime,
		&sh.ShiftType, &sh.Hours, &sh.Salary, &otHours, &otRate,
		&sh.OvertimeSalary, &sh.TipAmount, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Shift{}, err
		}
		return Shift{}, fmt.Errorf("failed to scan shift: %w", err)
	}
	sh.Date, _ = time.Parse(dateLayout, date)
	sh.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sh.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if otHours.Valid {
		sh.OvertimeHours = &otHours.Float64
	}
	if otRate.Valid {
		sh.OvertimeHourlyRate = &otRate.Float64
	}
	return sh, nil
}

func collectShifts(rows *sql.Rows) ([]Shift, error) {
	defer rows.Close()

	var result []Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, sh)
	}
	return result, rows.Err()
}

// =============================================================================
// SQL HELPERS
// =============================================================================

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func nullStringPtr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullFloatPtr(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
