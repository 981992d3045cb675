package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/yusufkecer/momentum-backend/internal/domain"
	"github.com/yusufkecer/momentum-backend/internal/middleware"
)

type Accounts interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

type AuthHandler struct {
	jwtSecret string
	tokenTTL  time.Duration
	accounts  Accounts
}

func NewAuthHandler(jwtSecret string, tokenTTL time.Duration, accounts Accounts) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret, tokenTTL: tokenTTL, accounts: accounts}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "failed to create account")
		return
	}
	h.issueToken(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.TokenRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "failed to login")
		return
	}
	h.issueToken(w, http.StatusOK, user)
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, status int, user *domain.User) {
	token, err := middleware.GenerateToken(user.ID, user.Email, h.jwtSecret, h.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	writeJSON(w, status, domain.TokenResponse{Token: token})
}
