package domain

import (
	"context"
	"time"

	"github.com/vladimiradmaev/fitness-helper/internal/report"
)

// UserStore persists users and their biometrics
type UserStore interface {
	GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*User, error)
	GetUser(ctx context.Context, userID uint) (*User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*User, error)
	GetProfile(ctx context.Context, userID uint) (UserProfile, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, userID uint, profile UserProfile) error
}

// LogWriter inserts log rows; each call is a single atomic write
type LogWriter interface {
	InsertFood(ctx context.Context, entry *FoodLogEntry) error
	InsertExercise(ctx context.Context, entry *ExerciseLogEntry, env *EnvironmentLogEntry) error
}

// LogReader supplies grouped-by-day rows for a closed date range
type LogReader interface {
	FoodByDay(ctx context.Context, userID uint, start, end time.Time) ([]report.FoodDayRow, error)
	ExerciseByDay(ctx context.Context, userID uint, start, end time.Time) ([]report.ExerciseDayRow, error)
	ExerciseDetails(ctx context.Context, userID uint, start, end time.Time) ([]report.ExerciseDetailRow, error)
	EnvironmentByDay(ctx context.Context, userID uint, start, end time.Time) ([]report.EnvironmentDayRow, error)
	RecentFoods(ctx context.Context, userID uint, limit int) ([]RecentFood, error)
	TotalCaloriesConsumed(ctx context.Context, userID uint) (float64, error)
}
