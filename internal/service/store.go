package service

import (
	"context"
	"time"

	"github.com/yusufkecer/momentum-backend/internal/domain"
)

// Lookups return (nil, nil) when the row does not exist.

type UserStore interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (int64, error)
	Save(ctx context.Context, u *domain.User) error
}

type TaskStore interface {
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) (int64, error)
	// Update rewrites title, type and duration only while the task is still active.
	// It reports false when the row is completed or gone.
	Update(ctx context.Context, t *domain.Task) (bool, error)
	// Complete stamps completedAt on an active task. It reports false, and changes
	// nothing, when the task was already completed.
	Complete(ctx context.Context, id int64, at time.Time) (bool, error)
	Delete(ctx context.Context, id int64) error
	FindActiveByUser(ctx context.Context, userID int64) ([]domain.Task, error)
	FindCompletedByUser(ctx context.Context, userID int64) ([]domain.Task, error)
}

type FitnessLogStore interface {
	FindByUserAndDate(ctx context.Context, userID int64, date time.Time) (*domain.DailyFitnessLog, error)
	FindAllByUser(ctx context.Context, userID int64) ([]domain.DailyFitnessLog, error)
	// Upsert creates the (userID, date) log or overwrites DidWorkout on the existing one
	// in a single statement.
	Upsert(ctx context.Context, userID int64, date time.Time, didWorkout bool) (*domain.DailyFitnessLog, error)
}

func requireUser(ctx context.Context, users UserStore, userID int64) (*domain.User, error) {
	u, err := users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("user %d not found", userID)
	}
	return u, nil
}
