package repository

import (
	"context"
	"time"

	"github.com/vladimiradmaev/fitness-helper/internal/database"
	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"github.com/vladimiradmaev/fitness-helper/internal/report"
	"github.com/vladimiradmaev/fitness-helper/internal/utils"
	"gorm.io/gorm"
)

// LogRepository stores food, exercise and environment logs and serves the
// grouped-by-day queries behind the weekly report
type LogRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new log repository
func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// InsertFood persists a food entry and sets its ID
func (r *LogRepository) InsertFood(ctx context.Context, entry *domain.FoodLogEntry) error {
	row := database.FoodLog{
		UserID:    entry.UserID,
		FoodName:  entry.FoodName,
		Quantity:  entry.Quantity,
		Calories:  entry.Calories,
		Estimated: entry.Estimated,
		LogDate:   entry.Day,
		LoggedAt:  entry.LoggedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	entry.ID = row.ID
	return nil
}

// InsertExercise persists an exercise entry and, when env is not nil, its
// environment row in the same transaction
func (r *LogRepository) InsertExercise(ctx context.Context, entry *domain.ExerciseLogEntry, env *domain.EnvironmentLogEntry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := database.ExerciseLog{
			UserID:          entry.UserID,
			Activity:        entry.Activity,
			DurationMinutes: entry.DurationMinutes,
			CaloriesBurned:  entry.CaloriesBurned,
			MET:             entry.MET,
			LogDate:         entry.Day,
			LoggedAt:        entry.LoggedAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		entry.ID = row.ID

		if env == nil {
			return nil
		}
		envRow := database.EnvironmentLog{
			UserID:           env.UserID,
			ExerciseLogID:    row.ID,
			DistanceWalkedKm: env.DistanceWalkedKm,
			CarbonSavedKg:    env.CarbonSavedKg,
			LogDate:          env.Day,
			LoggedAt:         env.LoggedAt,
		}
		if err := tx.Create(&envRow).Error; err != nil {
			return err
		}
		env.ID = envRow.ID
		env.ExerciseLogID = row.ID
		return nil
	})
	if err != nil {
		entry.ID = 0
		if env != nil {
			env.ID, env.ExerciseLogID = 0, 0
		}
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// FoodByDay sums food calories and counts items per day in [start, end]
func (r *LogRepository) FoodByDay(ctx context.Context, userID uint, start, end time.Time) ([]report.FoodDayRow, error) {
	var rows []report.FoodDayRow
	err := r.inRange(ctx, &database.FoodLog{}, userID, start, end).
		Select("log_date AS day, COALESCE(SUM(calories), 0) AS calories, COUNT(*) AS items").
		Group("log_date").
		Order("log_date").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return rows, nil
}

// ExerciseByDay sums burned calories and minutes and counts sessions per day
func (r *LogRepository) ExerciseByDay(ctx context.Context, userID uint, start, end time.Time) ([]report.ExerciseDayRow, error) {
	var rows []report.ExerciseDayRow
	err := r.inRange(ctx, &database.ExerciseLog{}, userID, start, end).
		Select("log_date AS day, COALESCE(SUM(calories_burned), 0) AS calories, COALESCE(SUM(duration_minutes), 0) AS minutes, COUNT(*) AS sessions").
		Group("log_date").
		Order("log_date").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return rows, nil
}

// ExerciseDetails lists sessions in the range, most recent first
func (r *LogRepository) ExerciseDetails(ctx context.Context, userID uint, start, end time.Time) ([]report.ExerciseDetailRow, error) {
	var rows []report.ExerciseDetailRow
	err := r.inRange(ctx, &database.ExerciseLog{}, userID, start, end).
		Select("log_date AS day, activity, duration_minutes, calories_burned, logged_at").
		Order("logged_at DESC, id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return rows, nil
}

// EnvironmentByDay sums walking distance and CO2 saved per day
func (r *LogRepository) EnvironmentByDay(ctx context.Context, userID uint, start, end time.Time) ([]report.EnvironmentDayRow, error) {
	var rows []report.EnvironmentDayRow
	err := r.inRange(ctx, &database.EnvironmentLog{}, userID, start, end).
		Select("log_date AS day, COALESCE(SUM(distance_walked_km), 0) AS distance_km, COALESCE(SUM(carbon_saved_kg), 0) AS carbon_saved_kg").
		Group("log_date").
		Order("log_date").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return rows, nil
}

// RecentFoods returns the newest food entries for a user
func (r *LogRepository) RecentFoods(ctx context.Context, userID uint, limit int) ([]domain.RecentFood, error) {
	var logs []database.FoodLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	out := make([]domain.RecentFood, 0, len(logs))
	for _, l := range logs {
		out = append(out, domain.RecentFood{
			FoodName: l.FoodName,
			Quantity: l.Quantity,
			Calories: l.Calories,
			LoggedAt: l.LoggedAt,
		})
	}
	return out, nil
}

// TotalCaloriesConsumed sums every food entry ever logged by the user
func (r *LogRepository) TotalCaloriesConsumed(ctx context.Context, userID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&database.FoodLog{}).
		Select("COALESCE(SUM(calories), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return total, nil
}

func (r *LogRepository) inRange(ctx context.Context, model interface{}, userID uint, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).Model(model).
		Where("user_id = ? AND log_date BETWEEN ? AND ?", userID, utils.DayKey(start), utils.DayKey(end))
}
