package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yusufkecer/momentum-backend/internal/middleware"
)

type RouterConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	APIKey         string
	AllowedOrigins string
	LoginLimiter   *middleware.RateLimiter
	Logger         *slog.Logger
}

type Services struct {
	Accounts   Accounts
	Profiles   Profiles
	Tasks      Tasks
	Fitness    Fitness
	Dashboards Dashboards
}

func NewRouter(cfg RouterConfig, svc Services) *mux.Router {
	authHandler := NewAuthHandler(cfg.JWTSecret, cfg.TokenTTL, svc.Accounts)
	userHandler := NewUserHandler(svc.Profiles)
	taskHandler := NewTaskHandler(svc.Tasks)
	fitnessHandler := NewFitnessHandler(svc.Fitness)
	dashboardHandler := NewDashboardHandler(svc.Dashboards)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := mux.NewRouter()

	// Global middleware: request log → CORS → security headers → MaxBytesReader
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
			next.ServeHTTP(w, r)
		})
	})

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet, http.MethodOptions)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.APIKeyMiddleware(cfg.APIKey))

	login := http.Handler(http.HandlerFunc(authHandler.Login))
	if cfg.LoginLimiter != nil {
		login = cfg.LoginLimiter.Middleware(login)
	}
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/login", login).Methods(http.MethodPost, http.MethodOptions)

	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	authed.HandleFunc("/me", userHandler.Me).Methods(http.MethodGet, http.MethodOptions)
	authed.HandleFunc("/profile/complete", userHandler.CompleteProfile).Methods(http.MethodPut, http.MethodOptions)

	// Everything below needs a completed profile.
	guarded := authed.NewRoute().Subrouter()
	guarded.Use(middleware.RequireCompleteProfile(svc.Profiles))

	guarded.HandleFunc("/profile", userHandler.UpdateProfile).Methods(http.MethodPatch, http.MethodOptions)

	guarded.HandleFunc("/tasks", taskHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	guarded.HandleFunc("/tasks/active", taskHandler.Active).Methods(http.MethodGet, http.MethodOptions)
	guarded.HandleFunc("/tasks/completed", taskHandler.Completed).Methods(http.MethodGet, http.MethodOptions)
	guarded.HandleFunc("/tasks/{taskId:[0-9]+}", taskHandler.Update).Methods(http.MethodPut, http.MethodOptions)
	guarded.HandleFunc("/tasks/{taskId:[0-9]+}", taskHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)
	guarded.HandleFunc("/tasks/{taskId:[0-9]+}/complete", taskHandler.Complete).Methods(http.MethodPut, http.MethodOptions)

	guarded.HandleFunc("/fitness/workout", fitnessHandler.MarkWorkout).Methods(http.MethodPost, http.MethodOptions)
	guarded.HandleFunc("/fitness/today", fitnessHandler.Today).Methods(http.MethodGet, http.MethodOptions)
	guarded.HandleFunc("/fitness/total-days", fitnessHandler.TotalDays).Methods(http.MethodGet, http.MethodOptions)
	guarded.HandleFunc("/fitness/streak", fitnessHandler.Streak).Methods(http.MethodGet, http.MethodOptions)
	guarded.HandleFunc("/fitness/macros", dashboardHandler.Macros).Methods(http.MethodGet, http.MethodOptions)

	guarded.HandleFunc("/dashboard", dashboardHandler.Get).Methods(http.MethodGet, http.MethodOptions)

	return r
}
