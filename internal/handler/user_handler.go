package handler

import (
	"context"
	"net/http"

	"github.com/yusufkecer/momentum-backend/internal/domain"
)

type Profiles interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	CompleteProfile(ctx context.Context, userID int64, gender domain.Gender, heightCm, weightKg int) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, heightCm, weightKg int) (*domain.User, error)
}

type completeProfileRequest struct {
	Gender   domain.Gender `json:"gender"`
	HeightCm int           `json:"heightCm"`
	WeightKg int           `json:"weightKg"`
}

type updateProfileRequest struct {
	HeightCm int `json:"heightCm"`
	WeightKg int `json:"weightKg"`
}

type UserHandler struct {
	profiles Profiles
}

func NewUserHandler(profiles Profiles) *UserHandler {
	return &UserHandler{profiles: profiles}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	user, err := h.profiles.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "failed to get user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req completeProfileRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.profiles.CompleteProfile(r.Context(), userID, req.Gender, req.HeightCm, req.WeightKg)
	if err != nil {
		writeServiceError(w, r, err, "failed to complete profile")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.profiles.UpdateProfile(r.Context(), userID, req.HeightCm, req.WeightKg)
	if err != nil {
		writeServiceError(w, r, err, "failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
