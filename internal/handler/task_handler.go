package handler

import (
	"context"
	"net/http"

	"github.com/yusufkecer/momentum-backend/internal/domain"
	"github.com/yusufkecer/momentum-backend/internal/metrics"
	"github.com/yusufkecer/momentum-backend/internal/service"
)

type Tasks interface {
	CreateTask(ctx context.Context, userID int64, in service.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID int64, in service.TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error
	CompleteTask(ctx context.Context, userID, taskID int64) (*domain.Task, error)
	GetActiveTasks(ctx context.Context, userID int64) ([]domain.Task, error)
	GetCompletedTasks(ctx context.Context, userID int64) ([]domain.Task, error)
}

type taskRequest struct {
	Title           string `json:"title"`
	TaskType        string `json:"taskType"`
	DurationMinutes int    `json:"durationMinutes"`
}

// input leaves an unrecognised taskType as the zero TaskType. The service rejects it
// as invalid input, but only after existence and ownership have been checked.
func (req taskRequest) input() service.TaskInput {
	typ, _ := domain.ParseTaskType(req.TaskType)
	return service.TaskInput{Title: req.Title, Type: typ, DurationMinutes: req.DurationMinutes}
}

type TaskHandler struct {
	tasks Tasks
}

func NewTaskHandler(tasks Tasks) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	in, ok := h.readInput(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, err, "failed to create task")
		return
	}
	metrics.RecordTaskEvent(metrics.TaskCreated)
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}
	in, ok := h.readInput(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), userID, taskID, in)
	if err != nil {
		writeServiceError(w, r, err, "failed to update task")
		return
	}
	metrics.RecordTaskEvent(metrics.TaskUpdated)
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), userID, taskID); err != nil {
		writeServiceError(w, r, err, "failed to delete task")
		return
	}
	metrics.RecordTaskEvent(metrics.TaskDeleted)
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "taskId")
	if !ok {
		return
	}

	task, err := h.tasks.CompleteTask(r.Context(), userID, taskID)
	if err != nil {
		writeServiceError(w, r, err, "failed to complete task")
		return
	}
	metrics.RecordTaskEvent(metrics.TaskCompleted)
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Active(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.tasks.GetActiveTasks)
}

func (h *TaskHandler) Completed(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.tasks.GetCompletedTasks)
}

func (h *TaskHandler) list(w http.ResponseWriter, r *http.Request, fetch func(context.Context, int64) ([]domain.Task, error)) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tasks, err := fetch(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) readInput(w http.ResponseWriter, r *http.Request) (service.TaskInput, bool) {
	var req taskRequest
	if !decode(w, r, &req) {
		return service.TaskInput{}, false
	}
	return req.input(), true
}
