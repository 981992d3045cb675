// Package service holds the business rules for tasks, workout logs, user profiles and
// the dashboard built from them.
package service

import (
	"context"
	"strings"

	"github.com/yusufkecer/momentum-backend/internal/clock"
	"github.com/yusufkecer/momentum-backend/internal/domain"
)

type TaskInput struct {
	Title           string
	Type            domain.TaskType
	DurationMinutes int
}

type TaskService struct {
	users UserStore
	tasks TaskStore
	clock clock.Clock
}

func NewTaskService(users UserStore, tasks TaskStore, clk clock.Clock) *TaskService {
	return &TaskService{users: users, tasks: tasks, clock: clk}
}

// CreateTask stores a new active task for userID.
func (s *TaskService) CreateTask(ctx context.Context, userID int64, in TaskInput) (*domain.Task, error) {
	if err := validateTaskInput(in); err != nil {
		return nil, err
	}
	if _, err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	task := &domain.Task{
		UserID:          userID,
		Title:           strings.TrimSpace(in.Title),
		Type:            in.Type,
		DurationMinutes: in.DurationMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	id, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	task.ID = id
	return task, nil
}

// UpdateTask edits an active task. Completed tasks are frozen.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID int64, in TaskInput) (*domain.Task, error) {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Completed {
		return nil, domain.InvalidState("cannot update a completed task")
	}
	if err := validateTaskInput(in); err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(in.Title)
	task.Type = in.Type
	task.DurationMinutes = in.DurationMinutes
	task.UpdatedAt = s.clock.Now()
	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		return nil, err
	}
	if !updated {
		// completed (or deleted) after it was read
		return nil, domain.InvalidState("cannot update a completed task")
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	return s.tasks.Delete(ctx, task.ID)
}

// CompleteTask is idempotent: a task that is already completed is returned as is,
// keeping its original CompletedAt.
func (s *TaskService) CompleteTask(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Completed {
		return task, nil
	}

	now := s.clock.Now()
	stamped, err := s.tasks.Complete(ctx, task.ID, now)
	if err != nil {
		return nil, err
	}
	if !stamped {
		// Another request completed it first; return its stamp, not ours.
		stored, err := s.tasks.FindByID(ctx, task.ID)
		if err != nil {
			return nil, err
		}
		if stored == nil {
			return nil, domain.NotFound("task %d not found", taskID)
		}
		return stored, nil
	}
	task.Completed = true
	task.CompletedAt = &now
	task.UpdatedAt = now
	return task, nil
}

func (s *TaskService) GetActiveTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	if _, err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return s.tasks.FindActiveByUser(ctx, userID)
}

func (s *TaskService) GetCompletedTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	if _, err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	return s.tasks.FindCompletedByUser(ctx, userID)
}

func (s *TaskService) ownedTask(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.NotFound("task %d not found", taskID)
	}
	if task.UserID != userID {
		return nil, domain.Forbidden("task does not belong to this user")
	}
	return task, nil
}

func validateTaskInput(in TaskInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.InvalidInput("title is required")
	}
	if !in.Type.Valid() {
		return domain.InvalidInput("task type must be one of DEEP, SHALLOW, FITNESS")
	}
	return validateDuration(in.Type, in.DurationMinutes)
}

func validateDuration(t domain.TaskType, minutes int) error {
	if minutes <= 0 {
		return domain.InvalidInput("duration must be greater than zero")
	}
	if t == domain.TaskTypeDeep && minutes < domain.MinDeepTaskMinutes {
		return domain.InvalidInput("deep task should be at least 2 hours")
	}
	return nil
}
