package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yusufkecer/momentum-backend/internal/clock"
	"github.com/yusufkecer/momentum-backend/internal/config"
	"github.com/yusufkecer/momentum-backend/internal/db"
	"github.com/yusufkecer/momentum-backend/internal/handler"
	"github.com/yusufkecer/momentum-backend/internal/middleware"
	"github.com/yusufkecer/momentum-backend/internal/repository"
	"github.com/yusufkecer/momentum-backend/internal/service"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET environment variable must be set")
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("invalid TIMEZONE", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}
	clk := clock.NewSystem(loc)

	trusted, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		logger.Error("invalid TRUSTED_PROXIES", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	database, err := db.Connect(ctx, cfg)
	if err != nil {
		cancel()
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	err = db.RunMigrations(ctx, database)
	cancel()
	if err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(database)
	taskRepo := repository.NewTaskRepository(database)
	fitnessRepo := repository.NewFitnessLogRepository(database)

	userService := service.NewUserService(userRepo, clk)
	taskService := service.NewTaskService(userRepo, taskRepo, clk)
	fitnessService := service.NewFitnessService(userRepo, fitnessRepo, clk)
	dashboardService := service.NewDashboardService(userRepo, taskRepo, fitnessService)

	router := handler.NewRouter(handler.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.JWTTTL,
		APIKey:         cfg.APIKey,
		AllowedOrigins: cfg.AllowedOrigins,
		LoginLimiter:   middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow, trusted),
		Logger:         logger,
	}, handler.Services{
		Accounts:   userService,
		Profiles:   userService,
		Tasks:      taskService,
		Fitness:    fitnessService,
		Dashboards: dashboardService,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "addr", server.Addr, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
