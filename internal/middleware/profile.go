package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/yusufkecer/momentum-backend/internal/domain"
)

type UserLookup interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// RequireCompleteProfile rejects authenticated callers who have not yet supplied
// gender, height and weight. It must run after AuthMiddleware.
func RequireCompleteProfile(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing authenticated user")
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				if domain.KindOf(err) == domain.KindNotFound {
					writeError(w, http.StatusUnauthorized, "user no longer exists")
					return
				}
				slog.Error("profile check failed", "user_id", userID, "error", err,
					"request_id", RequestIDFromContext(r.Context()))
				writeError(w, http.StatusInternalServerError, "failed to load user")
				return
			}
			if !user.ProfileCompleted {
				writeError(w, http.StatusForbidden, "PROFILE_NOT_COMPLETED")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
