package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/yusufkecer/momentum-backend/internal/domain"
	"github.com/yusufkecer/momentum-backend/internal/metrics"
)

type Fitness interface {
	MarkWorkoutToday(ctx context.Context, userID int64, didWorkout bool) (*domain.DailyFitnessLog, error)
	GetTodayLog(ctx context.Context, userID int64) (*domain.DailyFitnessLog, error)
	GetTotalWorkoutDays(ctx context.Context, userID int64) (int, error)
	GetWorkoutStreak(ctx context.Context, userID int64) (int, error)
}

type workoutRequest struct {
	DidWorkout *bool `json:"didWorkout"`
}

type fitnessLogResponse struct {
	ID         int64     `json:"id"`
	Date       string    `json:"date"`
	DidWorkout bool      `json:"didWorkout"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toFitnessLogResponse(l *domain.DailyFitnessLog) fitnessLogResponse {
	return fitnessLogResponse{
		ID:         l.ID,
		Date:       domain.DateKey(l.Date),
		DidWorkout: l.DidWorkout,
		CreatedAt:  l.CreatedAt,
	}
}

type FitnessHandler struct {
	fitness Fitness
}

func NewFitnessHandler(fitness Fitness) *FitnessHandler {
	return &FitnessHandler{fitness: fitness}
}

func (h *FitnessHandler) MarkWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req workoutRequest
	if !decode(w, r, &req) {
		return
	}
	if req.DidWorkout == nil {
		writeError(w, http.StatusBadRequest, "didWorkout is required")
		return
	}

	log, err := h.fitness.MarkWorkoutToday(r.Context(), userID, *req.DidWorkout)
	if err != nil {
		writeServiceError(w, r, err, "failed to record workout")
		return
	}
	metrics.RecordWorkoutMark(*req.DidWorkout)
	writeJSON(w, http.StatusOK, toFitnessLogResponse(log))
}

func (h *FitnessHandler) Today(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	log, err := h.fitness.GetTodayLog(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "failed to get today's log")
		return
	}
	if log == nil {
		writeError(w, http.StatusNotFound, "no log found for today")
		return
	}
	writeJSON(w, http.StatusOK, toFitnessLogResponse(log))
}

func (h *FitnessHandler) TotalDays(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	total, err := h.fitness.GetTotalWorkoutDays(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "failed to count workout days")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"totalWorkoutDays": total})
}

func (h *FitnessHandler) Streak(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	streak, err := h.fitness.GetWorkoutStreak(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "failed to compute streak")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"workoutStreak": streak})
}
