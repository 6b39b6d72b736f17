package repository_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/vladimiradmaev/fitness-helper/internal/config"
	"github.com/vladimiradmaev/fitness-helper/internal/database"
	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"github.com/vladimiradmaev/fitness-helper/internal/repository"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "fitness.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestUserRepositoryProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := repository.NewUserRepository(openDB(t))

	u, err := users.GetOrCreateUser(ctx, 42, "runner", "Ann", "Lee")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	again, err := users.GetOrCreateUser(ctx, 42, "other", "", "")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if again.ID != u.ID || again.Username != "runner" {
		t.Fatalf("expected existing user to be returned, got %+v", again)
	}

	profile, err := users.GetProfile(ctx, u.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.WeightKg != nil || profile.Age != nil {
		t.Fatalf("expected empty profile, got %+v", profile)
	}

	w, h, a := 82.5, 181.0, 34
	if err := users.UpdateProfile(ctx, u.ID, domain.UserProfile{WeightKg: &w, HeightCm: &h, Age: &a}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	profile, err = users.GetProfile(ctx, u.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.WeightKg == nil || *profile.WeightKg != 82.5 || profile.Age == nil || *profile.Age != 34 {
		t.Fatalf("expected stored profile, got %+v", profile)
	}

	if _, err := users.GetUser(ctx, 9999); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
	if err := users.UpdateProfile(ctx, 9999, domain.UserProfile{}); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected user not found on update, got %v", err)
	}

	list, err := users.ListUsers(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one user, got %d (%v)", len(list), err)
	}
}

func TestLogRepositoryGroupsByDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openDB(t)
	logs := repository.NewLogRepository(db)

	day1 := time.Date(2024, time.January, 9, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	foods := []domain.FoodLogEntry{
		{UserID: 1, FoodName: "banana", Quantity: 2, Calories: 213.6, Estimated: true, Day: "2024-01-09", LoggedAt: day1},
		{UserID: 1, FoodName: "apple", Quantity: 1, Calories: 78, Estimated: true, Day: "2024-01-10", LoggedAt: day2},
		{UserID: 1, FoodName: "pizza", Quantity: 1, Calories: 700, Day: "2024-01-10", LoggedAt: day2.Add(time.Hour)},
		{UserID: 2, FoodName: "mango", Quantity: 1, Calories: 60, Day: "2024-01-10", LoggedAt: day2},
		{UserID: 1, FoodName: "date", Quantity: 1, Calories: 282, Day: "2023-12-01", LoggedAt: day1.AddDate(0, -1, 0)},
	}
	for i := range foods {
		if err := logs.InsertFood(ctx, &foods[i]); err != nil {
			t.Fatalf("insert food %d: %v", i, err)
		}
		if foods[i].ID == 0 {
			t.Fatalf("expected food %d to get an id", i)
		}
	}

	rows, err := logs.FoodByDay(ctx, 1, day1, day2)
	if err != nil {
		t.Fatalf("food by day: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 day rows, got %+v", rows)
	}
	if rows[1].Day != "2024-01-10" || rows[1].Calories != 778 || rows[1].Items != 2 {
		t.Fatalf("unexpected grouped row %+v", rows[1])
	}

	recent, err := logs.RecentFoods(ctx, 1, 2)
	if err != nil {
		t.Fatalf("recent foods: %v", err)
	}
	if len(recent) != 2 || recent[0].FoodName != "pizza" || recent[1].FoodName != "apple" {
		t.Fatalf("expected newest first, got %+v", recent)
	}

	total, err := logs.TotalCaloriesConsumed(ctx, 1)
	if err != nil {
		t.Fatalf("total calories: %v", err)
	}
	if math.Abs(total-(213.6+78+700+282)) > 1e-6 {
		t.Fatalf("unexpected total %.2f", total)
	}
}

func TestLogRepositoryExerciseWithEnvironment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openDB(t)
	logs := repository.NewLogRepository(db)

	at := time.Date(2024, time.January, 10, 7, 0, 0, 0, time.UTC)
	walk := domain.ExerciseLogEntry{UserID: 1, Activity: "walking", DurationMinutes: 60, CaloriesBurned: 245, MET: 3.5, Day: "2024-01-10", LoggedAt: at}
	env := domain.EnvironmentLogEntry{UserID: 1, DistanceWalkedKm: 5, CarbonSavedKg: 1.05, Day: "2024-01-10", LoggedAt: at}
	if err := logs.InsertExercise(ctx, &walk, &env); err != nil {
		t.Fatalf("insert walk: %v", err)
	}
	if env.ExerciseLogID != walk.ID {
		t.Fatalf("expected environment row to reference exercise %d, got %d", walk.ID, env.ExerciseLogID)
	}

	run := domain.ExerciseLogEntry{UserID: 1, Activity: "running", DurationMinutes: 30, CaloriesBurned: 385, MET: 11, Day: "2024-01-10", LoggedAt: at.Add(2 * time.Hour)}
	if err := logs.InsertExercise(ctx, &run, nil); err != nil {
		t.Fatalf("insert run: %v", err)
	}

	byDay, err := logs.ExerciseByDay(ctx, 1, at, at)
	if err != nil {
		t.Fatalf("exercise by day: %v", err)
	}
	if len(byDay) != 1 || byDay[0].Calories != 630 || byDay[0].Minutes != 90 || byDay[0].Sessions != 2 {
		t.Fatalf("unexpected exercise rows %+v", byDay)
	}

	details, err := logs.ExerciseDetails(ctx, 1, at, at)
	if err != nil {
		t.Fatalf("exercise details: %v", err)
	}
	if len(details) != 2 || details[0].Activity != "running" {
		t.Fatalf("expected most recent session first, got %+v", details)
	}

	envRows, err := logs.EnvironmentByDay(ctx, 1, at, at)
	if err != nil {
		t.Fatalf("environment by day: %v", err)
	}
	if len(envRows) != 1 || envRows[0].DistanceKm != 5 || envRows[0].CarbonSavedKg != 1.05 {
		t.Fatalf("unexpected environment rows %+v", envRows)
	}
}

func TestLogRepositoryExerciseRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openDB(t)
	logs := repository.NewLogRepository(db)

	if err := db.Migrator().DropTable(&database.EnvironmentLog{}); err != nil {
		t.Fatalf("drop environment table: %v", err)
	}

	at := time.Date(2024, time.January, 10, 7, 0, 0, 0, time.UTC)
	walk := domain.ExerciseLogEntry{UserID: 1, Activity: "walking", DurationMinutes: 30, Day: "2024-01-10", LoggedAt: at}
	env := domain.EnvironmentLogEntry{UserID: 1, DistanceWalkedKm: 2.5, Day: "2024-01-10", LoggedAt: at}
	err := logs.InsertExercise(ctx, &walk, &env)
	if apperrors.TypeOf(err) != apperrors.ErrorTypeDatabase {
		t.Fatalf("expected database error, got %v", err)
	}

	var count int64
	if err := db.Model(&database.ExerciseLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count exercises: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected exercise insert to roll back, found %d rows", count)
	}
}
