package checkins

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&CheckIn{}, &CheckInStreak{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM check_ins")
		db.Exec("DELETE FROM check_in_streaks")
	})
	return db
}

func TestUpsertValidation(t *testing.T) {
	svc := NewCheckInService(openTestDB(t))
	userID := uuid.New()

	tests := []struct {
		name string
		req  UpsertCheckInRequest
		want error
	}{
		{"mood too low", UpsertCheckInRequest{Mood: 0, Energy: 5, SleepHours: 7}, ErrInvalidMood},
		{"mood too high", UpsertCheckInRequest{Mood: 11, Energy: 5, SleepHours: 7}, ErrInvalidMood},
		{"energy out of range", UpsertCheckInRequest{Mood: 5, Energy: 12, SleepHours: 7}, ErrInvalidEnergy},
		{"negative sleep", UpsertCheckInRequest{Mood: 5, Energy: 5, SleepHours: -1}, ErrInvalidSleep},
		{"bad day format", UpsertCheckInRequest{Day: "21-03-2026", Mood: 5, Energy: 5, SleepHours: 7}, ErrInvalidDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(userID, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpsertReplacesSameDay(t *testing.T) {
	svc := NewCheckInService(openTestDB(t))
	userID := uuid.New()

	first, err := svc.Upsert(userID, UpsertCheckInRequest{Day: "2026-03-01", Mood: 4, Energy: 4, SleepHours: 6})
	require.NoError(t, err)

	second, err := svc.Upsert(userID, UpsertCheckInRequest{Day: "2026-03-01", Mood: 8, Energy: 7, SleepHours: 8})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 8, second.Mood)

	checkIns, total, err := svc.List(userID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, checkIns, 1)
	assert.Equal(t, 8, checkIns[0].Mood)
}

func TestStreakProgression(t *testing.T) {
	svc := NewCheckInService(openTestDB(t))
	userID := uuid.New()

	days := []string{"2026-03-01", "2026-03-02", "2026-03-03"}
	for _, d := range days {
		_, err := svc.Upsert(userID, UpsertCheckInRequest{Day: d, Mood: 5, Energy: 5, SleepHours: 7})
		require.NoError(t, err)
	}

	streak, err := svc.GetStreak(userID)
	require.NoError(t, err)
	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)
	assert.Equal(t, 3, streak.TotalCheckIns)

	// A gap resets the current streak but not the longest.
	_, err = svc.Upsert(userID, UpsertCheckInRequest{Day: "2026-03-10", Mood: 5, Energy: 5, SleepHours: 7})
	require.NoError(t, err)

	streak, err = svc.GetStreak(userID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)
	assert.Equal(t, 4, streak.TotalCheckIns)
}

func TestGetByDayAndDelete(t *testing.T) {
	svc := NewCheckInService(openTestDB(t))
	userID := uuid.New()

	created, err := svc.Upsert(userID, UpsertCheckInRequest{Day: "2026-04-05", Mood: 6, Energy: 6, SleepHours: 7.5})
	require.NoError(t, err)

	got, err := svc.GetByDay(userID, "2026-04-05")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByDay(userID, "2026-04-06")
	assert.ErrorIs(t, err, ErrCheckInNotFound)

	require.NoError(t, svc.Delete(userID, created.ID))
	assert.ErrorIs(t, svc.Delete(userID, created.ID), ErrCheckInNotFound)
}

func TestDeleteOtherUsersCheckIn(t *testing.T) {
	svc := NewCheckInService(openTestDB(t))
	owner := uuid.New()

	created, err := svc.Upsert(owner, UpsertCheckInRequest{Day: "2026-04-07", Mood: 6, Energy: 6, SleepHours: 7})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(uuid.New(), created.ID), ErrCheckInNotFound)
}
