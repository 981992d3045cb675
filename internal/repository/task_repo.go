package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yusufkecer/momentum-backend/internal/domain"
)

const taskColumns = `id, user_id, title, task_type, duration_minutes, completed, completed_at, created_at, updated_at`

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (user_id, title, task_type, duration_minutes, completed, completed_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Title, string(t.Type), t.DurationMinutes, t.Completed, t.CompletedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create task: %w", err)
	}
	return result.LastInsertId()
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// Update touches only the editable columns and only while the row is active, so a
// completion that lands between read and write is never undone. Ownership and the
// completion columns are never rewritten.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = ?, task_type = ?, duration_minutes = ?, updated_at = ?
		 WHERE id = ? AND completed = FALSE`,
		t.Title, string(t.Type), t.DurationMinutes, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update task: %w", err)
	}
	return affectedOne(result)
}

// Complete stamps the task once; a second caller matches no row.
func (r *TaskRepository) Complete(ctx context.Context, id int64, at time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET completed = TRUE, completed_at = ?, updated_at = ?
		 WHERE id = ? AND completed = FALSE`,
		at, at, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to complete task: %w", err)
	}
	return affectedOne(result)
}

// affectedOne relies on clientFoundRows in the DSN: matched rows count even when
// the written values are unchanged.
func affectedOne(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindActiveByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	return r.listByUser(ctx, userID, false)
}

func (r *TaskRepository) FindCompletedByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	return r.listByUser(ctx, userID, true)
}

func (r *TaskRepository) listByUser(ctx context.Context, userID int64, completed bool) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks
		 WHERE user_id = ? AND completed = ?
		 ORDER BY id ASC`, userID, completed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (*domain.Task, error) {
	var t domain.Task
	var taskType string
	var completedAt sql.NullTime
	if err := s.Scan(&t.ID, &t.UserID, &t.Title, &taskType, &t.DurationMinutes, &t.Completed,
		&completedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Type = domain.TaskType(taskType)
	if completedAt.Valid {
		at := completedAt.Time
		t.CompletedAt = &at
	}
	return &t, nil
}
