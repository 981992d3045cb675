package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yusufkecer/momentum-backend/internal/domain"
)

type FitnessLogRepository struct {
	db *sql.DB
}

func NewFitnessLogRepository(db *sql.DB) *FitnessLogRepository {
	return &FitnessLogRepository{db: db}
}

// Dates are bound as YYYY-MM-DD strings so the driver's time zone conversion
// cannot shift them onto a neighbouring day.

func (r *FitnessLogRepository) FindByUserAndDate(ctx context.Context, userID int64, date time.Time) (*domain.DailyFitnessLog, error) {
	var l domain.DailyFitnessLog
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, date, did_workout, created_at
		 FROM daily_fitness_logs
		 WHERE user_id = ? AND date = ?`,
		userID, domain.DateKey(date),
	).Scan(&l.ID, &l.UserID, &l.Date, &l.DidWorkout, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fitness log: %w", err)
	}
	return &l, nil
}

func (r *FitnessLogRepository) FindAllByUser(ctx context.Context, userID int64) ([]domain.DailyFitnessLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, date, did_workout, created_at
		 FROM daily_fitness_logs
		 WHERE user_id = ?
		 ORDER BY date DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list fitness logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.DailyFitnessLog
	for rows.Next() {
		var l domain.DailyFitnessLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Date, &l.DidWorkout, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fitness log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// Upsert relies on the unique (user_id, date) key, so concurrent calls for the same
// day converge on one row.
func (r *FitnessLogRepository) Upsert(ctx context.Context, userID int64, date time.Time, didWorkout bool) (*domain.DailyFitnessLog, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_fitness_logs (user_id, date, did_workout)
		 VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE did_workout = VALUES(did_workout)`,
		userID, domain.DateKey(date), didWorkout,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert fitness log: %w", err)
	}

	l, err := r.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("fitness log for user %d on %s vanished after upsert", userID, domain.DateKey(date))
	}
	return l, nil
}
