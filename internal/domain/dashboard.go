package domain

type NutritionTargets struct {
	HeightCm            int     `json:"heightCm"`
	WeightKg            int     `json:"weightKg"`
	Gender              Gender  `json:"gender,omitempty"`
	ProteinMin          float64 `json:"proteinMin"`
	ProteinMax          float64 `json:"proteinMax"`
	CaloriesMaintenance int     `json:"caloriesMaintenance"`
	CaloriesCut         int     `json:"caloriesCut"`
	CaloriesBulk        int     `json:"caloriesBulk"`
}

type TaskSummary struct {
	ActiveTasks         []Task `json:"activeTasks"`
	CompletedTasks      []Task `json:"completedTasks"`
	TotalDeepMinutes    int    `json:"totalDeepMinutes"`
	TotalShallowMinutes int    `json:"totalShallowMinutes"`
	TotalFitnessMinutes int    `json:"totalFitnessMinutes"`
}

type FitnessSummary struct {
	DidWorkoutToday  bool `json:"didWorkoutToday"`
	TotalWorkoutDays int  `json:"totalWorkoutDays"`
	WorkoutStreak    int  `json:"workoutStreak"`
}

// Dashboard is assembled once per request and never mutated afterwards.
type Dashboard struct {
	UserSummary    NutritionTargets `json:"userSummary"`
	TaskSummary    TaskSummary      `json:"taskSummary"`
	FitnessSummary FitnessSummary   `json:"fitnessSummary"`
}
