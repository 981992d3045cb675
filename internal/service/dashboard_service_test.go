package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusufkecer/momentum-backend/internal/clock"
	"github.com/yusufkecer/momentum-backend/internal/domain"
)

func newDashboardFixture(tasks ...domain.Task) (*DashboardService, *memTasks, *memLogs) {
	users := newMemUsers(domain.User{ID: 1, Name: "Ada", Gender: domain.GenderFemale, HeightCm: 172, WeightKg: 80, ProfileCompleted: true})
	store := newMemTasks(tasks...)
	logs := newMemLogs()
	clk := &clock.Fixed{T: testNow}
	fitness := NewFitnessService(users, logs, clk)
	return NewDashboardService(users, store, fitness), store, logs
}

func TestNutritionFor(t *testing.T) {
	got := NutritionFor(&domain.User{WeightKg: 80, HeightCm: 180, Gender: domain.GenderMale})

	assert.Equal(t, 2640, got.CaloriesMaintenance)
	assert.Equal(t, 2340, got.CaloriesCut)
	assert.Equal(t, 2940, got.CaloriesBulk)
	assert.InDelta(t, 128.0, got.ProteinMin, 1e-9)
	assert.InDelta(t, 176.0, got.ProteinMax, 1e-9)
	assert.Equal(t, 180, got.HeightCm)
	assert.Equal(t, domain.GenderMale, got.Gender)
}

func TestGetDashboard(t *testing.T) {
	done := testNow
	svc, _, logs := newDashboardFixture(
		domain.Task{ID: 1, UserID: 1, Title: "run", Type: domain.TaskTypeFitness, DurationMinutes: 40},
		domain.Task{ID: 2, UserID: 1, Title: "thesis", Type: domain.TaskTypeDeep, DurationMinutes: 120, Completed: true, CompletedAt: &done},
		domain.Task{ID: 3, UserID: 1, Title: "email", Type: domain.TaskTypeShallow, DurationMinutes: 30, Completed: true, CompletedAt: &done},
		domain.Task{ID: 4, UserID: 2, Title: "not mine", Type: domain.TaskTypeFitness, DurationMinutes: 60, Completed: true, CompletedAt: &done},
	)
	logs.add(1, day(0), true)
	logs.add(1, day(-1), true)
	logs.add(1, day(-5), true)

	dash, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2640, dash.UserSummary.CaloriesMaintenance)
	assert.Equal(t, 2340, dash.UserSummary.CaloriesCut)
	assert.Equal(t, 2940, dash.UserSummary.CaloriesBulk)
	assert.InDelta(t, 128.0, dash.UserSummary.ProteinMin, 1e-9)
	assert.InDelta(t, 176.0, dash.UserSummary.ProteinMax, 1e-9)

	assert.Len(t, dash.TaskSummary.ActiveTasks, 1)
	assert.Len(t, dash.TaskSummary.CompletedTasks, 2)
	assert.Equal(t, 120, dash.TaskSummary.TotalDeepMinutes)
	assert.Equal(t, 30, dash.TaskSummary.TotalShallowMinutes)
	assert.Equal(t, 0, dash.TaskSummary.TotalFitnessMinutes)

	assert.True(t, dash.FitnessSummary.DidWorkoutToday)
	assert.Equal(t, 3, dash.FitnessSummary.TotalWorkoutDays)
	assert.Equal(t, 2, dash.FitnessSummary.WorkoutStreak)
}

func TestGetDashboardWithoutTodayLog(t *testing.T) {
	svc, _, logs := newDashboardFixture()
	logs.add(1, day(-1), true)

	dash, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)

	assert.False(t, dash.FitnessSummary.DidWorkoutToday)
	assert.Equal(t, 1, dash.FitnessSummary.TotalWorkoutDays)
	assert.Zero(t, dash.FitnessSummary.WorkoutStreak)
	assert.NotNil(t, dash.TaskSummary.ActiveTasks)
	assert.NotNil(t, dash.TaskSummary.CompletedTasks)
	assert.Len(t, logs.rows, 1, "reading the dashboard must not create a log")
}

func TestGetDashboardUnknownUserShortCircuits(t *testing.T) {
	svc, store, logs := newDashboardFixture()

	_, err := svc.GetDashboard(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, store.calls)
	assert.Zero(t, logs.calls)
}

func TestGetMacros(t *testing.T) {
	svc, _, _ := newDashboardFixture()

	macros, err := svc.GetMacros(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2640, macros.CaloriesMaintenance)

	_, err = svc.GetMacros(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
