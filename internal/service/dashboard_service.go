package service

import (
	"context"

	"github.com/yusufkecer/momentum-backend/internal/domain"
)

const (
	proteinMinPerKg      = 1.6
	proteinMaxPerKg      = 2.2
	maintenanceKcalPerKg = 33
	kcalAdjustment       = 300
)

type DashboardService struct {
	users   UserStore
	tasks   TaskStore
	fitness *FitnessService
}

func NewDashboardService(users UserStore, tasks TaskStore, fitness *FitnessService) *DashboardService {
	return &DashboardService{users: users, tasks: tasks, fitness: fitness}
}

// GetDashboard composes nutrition targets, task totals and workout stats for one user.
// An unknown user fails before any task or fitness lookup runs.
func (s *DashboardService) GetDashboard(ctx context.Context, userID int64) (*domain.Dashboard, error) {
	user, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	active, err := s.tasks.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.tasks.FindCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fitness, err := s.fitness.summary(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		UserSummary:    NutritionFor(user),
		TaskSummary:    summarizeTasks(active, completed),
		FitnessSummary: fitness,
	}, nil
}

// GetMacros returns only the nutrition block of the dashboard.
func (s *DashboardService) GetMacros(ctx context.Context, userID int64) (domain.NutritionTargets, error) {
	user, err := requireUser(ctx, s.users, userID)
	if err != nil {
		return domain.NutritionTargets{}, err
	}
	return NutritionFor(user), nil
}

func NutritionFor(u *domain.User) domain.NutritionTargets {
	maintenance := u.WeightKg * maintenanceKcalPerKg
	return domain.NutritionTargets{
		HeightCm:            u.HeightCm,
		WeightKg:            u.WeightKg,
		Gender:              u.Gender,
		ProteinMin:          float64(u.WeightKg) * proteinMinPerKg,
		ProteinMax:          float64(u.WeightKg) * proteinMaxPerKg,
		CaloriesMaintenance: maintenance,
		CaloriesCut:         maintenance - kcalAdjustment,
		CaloriesBulk:        maintenance + kcalAdjustment,
	}
}

// summarizeTasks sums completed minutes per type. Active tasks are listed only.
func summarizeTasks(active, completed []domain.Task) domain.TaskSummary {
	if active == nil {
		active = []domain.Task{}
	}
	if completed == nil {
		completed = []domain.Task{}
	}

	summary := domain.TaskSummary{ActiveTasks: active, CompletedTasks: completed}
	for _, t := range completed {
		switch t.Type {
		case domain.TaskTypeDeep:
			summary.TotalDeepMinutes += t.DurationMinutes
		case domain.TaskTypeShallow:
			summary.TotalShallowMinutes += t.DurationMinutes
		case domain.TaskTypeFitness:
			summary.TotalFitnessMinutes += t.DurationMinutes
		}
	}
	return summary
}
