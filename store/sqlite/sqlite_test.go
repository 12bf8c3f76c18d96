package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxp/hourtracker/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func float64Ptr(v float64) *float64 { return &v }

func TestUsers_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUser(ctx, sqlite.User{ID: "u-1", DisplayName: "Dana", Email: "dana@example.com"}))

	got, err := store.GetUser(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dana", got.DisplayName)

	// Upsert updates in place.
	require.NoError(t, store.SaveUser(ctx, sqlite.User{ID: "u-1", DisplayName: "Dana L", Email: "dana@example.com"}))
	got, err = store.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Dana L", got.DisplayName)
}

func TestUsers_MissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSettings_RoundTripAndPremium(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	expiry := time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Second)

	require.NoError(t, store.SaveSettings(ctx, sqlite.UserSettings{
		UserID:             "u-1",
		HourlyRate:         51,
		OvertimeHourlyRate: 63.75,
		ShabbatHourlyRate:  76.5,
		PremiumExpiresAt:   &expiry,
		ThemePreference:    "dark",
	}))

	got, err := store.GetSettings(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 51.0, got.HourlyRate)
	assert.Equal(t, "dark", got.ThemePreference)
	require.NotNil(t, got.PremiumExpiresAt)
	assert.True(t, got.IsPremium(time.Now()))
	assert.False(t, got.IsPremium(expiry.Add(time.Hour)))
}

func TestShiftTypes_SeedDefaultsOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDefaultShiftTypes(ctx))
	first, err := store.ListShiftTypes(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, first, 6)

	// Seeding again must not duplicate.
	require.NoError(t, store.SeedDefaultShiftTypes(ctx))
	second, err := store.ListShiftTypes(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, second, len(first))

	morning, err := store.GetShiftTypeByCode(ctx, "MORNING")
	require.NoError(t, err)
	require.NotNil(t, morning)
	assert.Equal(t, 60, morning.UnpaidBreakMinutes)
	assert.Equal(t, "06:30", morning.DefaultStart)
}

func TestShiftTypes_WorkplaceScoped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SeedDefaultShiftTypes(ctx))

	wp := &sqlite.Workplace{UserID: "u-1", Name: "Cafe", HourlyRate: 55}
	require.NoError(t, store.SaveWorkplace(ctx, wp))

	custom := &sqlite.ShiftType{Code: "MORNING", WorkplaceID: &wp.ID, Name: "Opening", DefaultStart: "07:00", DefaultEnd: "15:00"}
	require.NoError(t, store.SaveShiftType(ctx, custom))

	scoped, err := store.ListShiftTypes(ctx, &wp.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Opening", scoped[0].Name)

	// System defaults stay separate.
	defaults, err := store.ListShiftTypes(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, defaults, 6)
}

func TestShifts_SaveListDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	jan := func(day int) time.Time { return time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC) }

	for day := 5; day <= 9; day++ {
		sh := &sqlite.Shift{
			UserID:    "u-1",
			Date:      jan(day),
			StartTime: "08:00",
			EndTime:   "16:00",
			ShiftType: "משמרת בוקר",
			Hours:     8,
			Salary:    408,
		}
		require.NoError(t, store.SaveShift(ctx, sh))
		assert.NotEmpty(t, sh.ID)
	}

	listed, err := store.ListShifts(ctx, "u-1", jan(6), jan(8))
	require.NoError(t, err)
	assert.Len(t, listed, 3)
	// Newest first.
	assert.Equal(t, jan(8), listed[0].Date)

	recent, err := store.ListRecentShifts(ctx, "u-1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, jan(9), recent[0].Date)

	require.NoError(t, store.DeleteShift(ctx, listed[0].ID))
	all, err := store.ListAllShifts(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestShifts_UpdatePreservesIdentity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sh := &sqlite.Shift{
		UserID:    "u-1",
		Date:      time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		StartTime: "08:00",
		EndTime:   "16:00",
		Hours:     8,
		Salary:    408,
	}
	require.NoError(t, store.SaveShift(ctx, sh))

	sh.EndTime = "17:00"
	sh.Hours = 9
	sh.OvertimeHours = float64Ptr(1)
	sh.OvertimeHourlyRate = float64Ptr(63.75)
	sh.OvertimeSalary = 63.75
	require.NoError(t, store.SaveShift(ctx, sh))

	got, err := store.GetShift(ctx, sh.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "17:00", got.EndTime)
	require.NotNil(t, got.OvertimeHours)
	assert.Equal(t, 1.0, *got.OvertimeHours)
}
