package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/yusufkecer/momentum-backend/internal/clock"
	"github.com/yusufkecer/momentum-backend/internal/domain"
)

type FitnessService struct {
	users UserStore
	logs  FitnessLogStore
	clock clock.Clock
}

func NewFitnessService(users UserStore, logs FitnessLogStore, clk clock.Clock) *FitnessService {
	return &FitnessService{users: users, logs: logs, clock: clk}
}

// MarkWorkoutToday records whether the user worked out on the current date, creating
// the day's log on first use. Repeated calls on one day update the same log.
func (s *FitnessService) MarkWorkoutToday(ctx context.Context, userID int64, didWorkout bool) (*domain.DailyFitnessLog, error) {
	if _, err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return s.logs.Upsert(ctx, userID, s.clock.Today(), didWorkout)
}

// GetTodayLog returns nil when nothing has been logged today. It never creates a log.
func (s *FitnessService) GetTodayLog(ctx context.Context, userID int64) (*domain.DailyFitnessLog, error) {
	if _, err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return s.todayLog(ctx, userID)
}

func (s *FitnessService) GetTotalWorkoutDays(ctx context.Context, userID int64) (int, error) {
	if _, err := requireUser(ctx, s.users, userID); err != nil {
		return 0, err
	}
	logs, err := s.logs.FindAllByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return TotalWorkoutDays(logs), nil
}

func (s *FitnessService) GetWorkoutStreak(ctx context.Context, userID int64) (int, error) {
	if _, err := requireUser(ctx, s.users, userID); err != nil {
		return 0, err
	}
	logs, err := s.logs.FindAllByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return WorkoutStreak(logs, s.clock.Today()), nil
}

// summary skips the user check; the caller has already resolved the user.
func (s *FitnessService) summary(ctx context.Context, userID int64) (domain.FitnessSummary, error) {
	today, err := s.todayLog(ctx, userID)
	if err != nil {
		return domain.FitnessSummary{}, err
	}
	logs, err := s.logs.FindAllByUser(ctx, userID)
	if err != nil {
		return domain.FitnessSummary{}, err
	}
	return domain.FitnessSummary{
		DidWorkoutToday:  today != nil && today.DidWorkout,
		TotalWorkoutDays: TotalWorkoutDays(logs),
		WorkoutStreak:    WorkoutStreak(logs, s.clock.Today()),
	}, nil
}

func (s *FitnessService) todayLog(ctx context.Context, userID int64) (*domain.DailyFitnessLog, error) {
	return s.logs.FindByUserAndDate(ctx, userID, s.clock.Today())
}

// TotalWorkoutDays counts every logged day with a workout, over all time.
func TotalWorkoutDays(logs []domain.DailyFitnessLog) int {
	n := 0
	for _, l := range logs {
		if l.DidWorkout {
			n++
		}
	}
	return n
}

// WorkoutStreak counts consecutive worked-out days ending today. Without a
// worked-out log for today the streak is 0, whatever came before.
func WorkoutStreak(logs []domain.DailyFitnessLog, today time.Time) int {
	sorted := slices.Clone(logs)
	slices.SortFunc(sorted, func(a, b domain.DailyFitnessLog) int {
		return strings.Compare(domain.DateKey(b.Date), domain.DateKey(a.Date))
	})

	streak := 0
	expected := today
	for _, l := range sorted {
		day, want := domain.DateKey(l.Date), domain.DateKey(expected)
		if day > want {
			// future-dated rows cannot extend a streak ending today
			continue
		}
		if day != want || !l.DidWorkout {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}
