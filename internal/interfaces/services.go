package interfaces

import (
	"context"
	"time"

	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	"github.com/vladimiradmaev/fitness-helper/internal/services"
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error)
	GetUser(ctx context.Context, userID uint) (*domain.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, userID uint, profile domain.UserProfile) error
}

// FoodLogServiceInterface defines the contract for food logging
type FoodLogServiceInterface interface {
	LogFood(ctx context.Context, userID uint, in services.FoodInput) (*domain.FoodLogEntry, error)
}

// ExerciseLogServiceInterface defines the contract for exercise logging
type ExerciseLogServiceInterface interface {
	LogExercise(ctx context.Context, userID uint, activity, durationRaw string) (*domain.ExerciseLogEntry, *domain.EnvironmentLogEntry, error)
}

// ReportServiceInterface defines the contract for the weekly dashboard
type ReportServiceInterface interface {
	Dashboard(ctx context.Context, userID uint, today time.Time) (*services.Dashboard, error)
	TotalCaloriesConsumed(ctx context.Context, userID uint) (float64, error)
	Today() time.Time
}
