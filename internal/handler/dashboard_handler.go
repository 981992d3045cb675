package handler

import (
	"context"
	"net/http"

	"github.com/yusufkecer/momentum-backend/internal/domain"
)

type Dashboards interface {
	GetDashboard(ctx context.Context, userID int64) (*domain.Dashboard, error)
	GetMacros(ctx context.Context, userID int64) (domain.NutritionTargets, error)
}

type DashboardHandler struct {
	dashboards Dashboards
}

func NewDashboardHandler(dashboards Dashboards) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	dash, err := h.dashboards.GetDashboard(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "failed to build dashboard")
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (h *DashboardHandler) Macros(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	macros, err := h.dashboards.GetMacros(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "failed to compute macros")
		return
	}
	writeJSON(w, http.StatusOK, macros)
}
