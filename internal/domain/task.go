package domain

import (
	"strings"
	"time"
)

type TaskType string

const (
	TaskTypeDeep    TaskType = "DEEP"
	TaskTypeShallow TaskType = "SHALLOW"
	TaskTypeFitness TaskType = "FITNESS"
)

// MinDeepTaskMinutes is the shortest block a deep-work task may be planned for.
const MinDeepTaskMinutes = 120

// ParseTaskType accepts the type names case-insensitively.
func ParseTaskType(s string) (TaskType, bool) {
	switch t := TaskType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TaskTypeDeep, TaskTypeShallow, TaskTypeFitness:
		return t, true
	}
	return "", false
}

func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeDeep, TaskTypeShallow, TaskTypeFitness:
		return true
	}
	return false
}

// Task is owned by exactly one user for its whole life; UserID is never reassigned.
type Task struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userId"`
	Title           string     `json:"title"`
	Type            TaskType   `json:"taskType"`
	DurationMinutes int        `json:"durationMinutes"`
	Completed       bool       `json:"completed"`
	CompletedAt     *time.Time `json:"completedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
