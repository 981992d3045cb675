package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusufkecer/momentum-backend/internal/clock"
	"github.com/yusufkecer/momentum-backend/internal/domain"
)

func newFitnessFixture() (*FitnessService, *memUsers, *memLogs, *clock.Fixed) {
	users := newMemUsers(domain.User{ID: 1, Name: "Ada", WeightKg: 80})
	logs := newMemLogs()
	clk := &clock.Fixed{T: testNow}
	return NewFitnessService(users, logs, clk), users, logs, clk
}

func day(offset int) time.Time {
	return clock.StartOfDay(testNow).AddDate(0, 0, offset)
}

func TestMarkWorkoutTodayTwiceKeepsOneLog(t *testing.T) {
	svc, _, logs, _ := newFitnessFixture()
	ctx := context.Background()

	_, err := svc.MarkWorkoutToday(ctx, 1, true)
	require.NoError(t, err)
	log, err := svc.MarkWorkoutToday(ctx, 1, true)
	require.NoError(t, err)

	assert.Len(t, logs.rows, 1)
	assert.True(t, log.DidWorkout)
	assert.Equal(t, domain.DateKey(testNow), domain.DateKey(log.Date))
}

func TestMarkWorkoutTodayOverwritesFlag(t *testing.T) {
	svc, _, logs, _ := newFitnessFixture()
	ctx := context.Background()

	_, err := svc.MarkWorkoutToday(ctx, 1, true)
	require.NoError(t, err)
	_, err = svc.MarkWorkoutToday(ctx, 1, false)
	require.NoError(t, err)

	today, err := svc.GetTodayLog(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.False(t, today.DidWorkout)
	assert.Len(t, logs.rows, 1)
}

func TestMarkWorkoutOnNewDayCreatesNewLog(t *testing.T) {
	svc, _, logs, clk := newFitnessFixture()
	ctx := context.Background()

	_, err := svc.MarkWorkoutToday(ctx, 1, true)
	require.NoError(t, err)
	clk.Set(testNow.AddDate(0, 0, 1))
	_, err = svc.MarkWorkoutToday(ctx, 1, true)
	require.NoError(t, err)

	assert.Len(t, logs.rows, 2)
	streak, err := svc.GetWorkoutStreak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestGetTodayLogDoesNotCreate(t *testing.T) {
	svc, _, logs, _ := newFitnessFixture()

	log, err := svc.GetTodayLog(context.Background(), 1)

	require.NoError(t, err)
	assert.Nil(t, log)
	assert.Empty(t, logs.rows)
}

func TestTotalWorkoutDaysCountsAllTime(t *testing.T) {
	svc, _, logs, _ := newFitnessFixture()
	logs.add(1, day(-400), true)
	logs.add(1, day(-30), true)
	logs.add(1, day(-29), false)
	logs.add(1, day(0), true)
	logs.add(2, day(0), true)

	total, err := svc.GetTotalWorkoutDays(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestWorkoutStreak(t *testing.T) {
	tests := []struct {
		name string
		logs map[int]bool
		want int
	}{
		{"three days ending today", map[int]bool{0: true, -1: true, -2: true}, 3},
		{"today missing", map[int]bool{-1: true, -2: true, -3: true}, 0},
		{"today false", map[int]bool{0: false, -1: true}, 0},
		{"gap stops the walk", map[int]bool{0: true, -1: true, -3: true, -4: true}, 2},
		{"false entry stops the walk", map[int]bool{0: true, -1: false, -2: true}, 1},
		{"only today", map[int]bool{0: true}, 1},
		{"future entry ignored", map[int]bool{1: true, 0: true, -1: true}, 2},
		{"no logs", map[int]bool{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs []domain.DailyFitnessLog
			for offset, did := range tt.logs {
				logs = append(logs, domain.DailyFitnessLog{UserID: 1, Date: day(offset), DidWorkout: did})
			}
			assert.Equal(t, tt.want, WorkoutStreak(logs, day(0)))
		})
	}
}

func TestWorkoutStreakComparesCalendarDates(t *testing.T) {
	// rows scanned from a DATE column come back as UTC midnight
	loc := time.FixedZone("UTC+3", 3*60*60)
	today := time.Date(2026, time.October, 18, 0, 0, 0, 0, loc)
	logs := []domain.DailyFitnessLog{
		{Date: time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC), DidWorkout: true},
		{Date: time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC), DidWorkout: true},
	}

	assert.Equal(t, 2, WorkoutStreak(logs, today))
}

func TestFitnessUnknownUser(t *testing.T) {
	svc, _, logs, _ := newFitnessFixture()
	ctx := context.Background()

	_, err := svc.MarkWorkoutToday(ctx, 9, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetTodayLog(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetTotalWorkoutDays(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetWorkoutStreak(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Zero(t, logs.calls)
}
