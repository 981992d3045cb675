package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/yusufkecer/momentum-backend/internal/domain"
	"github.com/yusufkecer/momentum-backend/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps domain failures to their status codes. Anything else is an
// unexpected store failure: it is logged and reported as fallback with a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		writeError(w, http.StatusNotFound, err.Error())
		return
	case domain.KindForbidden:
		writeError(w, http.StatusForbidden, err.Error())
		return
	case domain.KindInvalidInput:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case domain.KindInvalidState:
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		slog.Error(fallback,
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// currentUser reads the authenticated principal. Routes never take a user id from
// the path or body.
func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authenticated user")
		return 0, false
	}
	return userID, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
