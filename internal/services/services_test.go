package services_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/vladimiradmaev/fitness-helper/internal/calories"
	"github.com/vladimiradmaev/fitness-helper/internal/config"
	"github.com/vladimiradmaev/fitness-helper/internal/database"
	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"github.com/vladimiradmaev/fitness-helper/internal/report"
	"github.com/vladimiradmaev/fitness-helper/internal/repository"
	"github.com/vladimiradmaev/fitness-helper/internal/services"
)

var fixedNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

type stack struct {
	users     *services.UserService
	foods     *services.FoodLogService
	exercises *services.ExerciseLogService
	reports   *services.ReportService
}

func newStack(t *testing.T) stack {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "fitness.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewLogRepository(db)
	est := calories.NewDefault()
	now := func() time.Time { return fixedNow }

	return stack{
		users:     services.NewUserService(userRepo),
		foods:     services.NewFoodLogService(logRepo, est, time.UTC).WithClock(now),
		exercises: services.NewExerciseLogService(userRepo, logRepo, est, time.UTC).WithClock(now),
		reports:   services.NewReportService(logRepo, services.NewCoachServiceWithGenerators(), time.UTC).WithClock(now),
	}
}

func TestLogFoodEstimatesAndFallsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStack(t)

	u, err := s.users.RegisterUser(ctx, 1001, "eater", "", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	banana, err := s.foods.LogFood(ctx, u.ID, services.FoodInput{FoodName: "banana", Quantity: "2", ManualCalories: "999"})
	if err != nil {
		t.Fatalf("log banana: %v", err)
	}
	if banana.Calories != 213.6 || !banana.Estimated || banana.Day != "2024-01-10" {
		t.Fatalf("unexpected banana entry %+v", banana)
	}

	pizza, err := s.foods.LogFood(ctx, u.ID, services.FoodInput{FoodName: "pizza", Quantity: "abc", ManualCalories: "350"})
	if err != nil {
		t.Fatalf("log pizza: %v", err)
	}
	if pizza.Calories != 350 || pizza.Estimated || pizza.Quantity != 1 {
		t.Fatalf("expected manual fallback with quantity 1, got %+v", pizza)
	}

	mystery, err := s.foods.LogFood(ctx, u.ID, services.FoodInput{FoodName: "spaceship"})
	if err != nil {
		t.Fatalf("log unknown food: %v", err)
	}
	if mystery.Calories != 0 {
		t.Fatalf("expected unknown food without manual value to log 0, got %.1f", mystery.Calories)
	}

	if _, err := s.foods.LogFood(ctx, u.ID, services.FoodInput{FoodName: "  "}); apperrors.TypeOf(err) != apperrors.ErrorTypeValidation {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
}

func TestLogExerciseUsesProfileAndWalking(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStack(t)

	u, err := s.users.RegisterUser(ctx, 1002, "mover", "", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	profile, err := services.ParseProfile("90 170 40")
	if err != nil {
		t.Fatalf("parse profile: %v", err)
	}
	if err := s.users.UpdateProfile(ctx, u.ID, profile); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	run, env, err := s.exercises.LogExercise(ctx, u.ID, "running fast", "30")
	if err != nil {
		t.Fatalf("log run: %v", err)
	}
	if run.CaloriesBurned != 614.3 || env != nil {
		t.Fatalf("expected 614.3 kcal and no environment row, got %+v %+v", run, env)
	}

	walk, env, err := s.exercises.LogExercise(ctx, u.ID, "Walking", "60")
	if err != nil {
		t.Fatalf("log walk: %v", err)
	}
	if env == nil || env.ExerciseLogID != walk.ID {
		t.Fatalf("expected environment row linked to walk, got %+v", env)
	}
	if env.DistanceWalkedKm != 5 || math.Abs(env.CarbonSavedKg-1.05) > 1e-9 {
		t.Fatalf("expected 5 km and 1.05 kg CO2, got %+v", env)
	}

	odd, _, err := s.exercises.LogExercise(ctx, u.ID, "running", "soon")
	if err != nil {
		t.Fatalf("log malformed duration: %v", err)
	}
	if odd.DurationMinutes != 0 || odd.CaloriesBurned != 0 {
		t.Fatalf("expected malformed duration to log 0 minutes, got %+v", odd)
	}

	if _, _, err := s.exercises.LogExercise(ctx, 4242, "yoga", "10"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestOversizedNumbersAreCoerced(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStack(t)

	u, err := s.users.RegisterUser(ctx, 1004, "overflow", "", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := s.exercises.LogExercise(ctx, u.ID, "walking", "30"); err != nil {
		t.Fatalf("log real walk: %v", err)
	}

	for _, raw := range []string{"1e30", "9e18"} {
		food, err := s.foods.LogFood(ctx, u.ID, services.FoodInput{FoodName: "banana", Quantity: raw})
		if err != nil {
			t.Fatalf("log food quantity %s: %v", raw, err)
		}
		if food.Quantity != 1 || food.Calories != 106.8 {
			t.Fatalf("expected quantity %s to coerce to 1, got %+v", raw, food)
		}

		walk, env, err := s.exercises.LogExercise(ctx, u.ID, "walking", raw)
		if err != nil {
			t.Fatalf("log walk duration %s: %v", raw, err)
		}
		if walk.DurationMinutes != 0 || walk.CaloriesBurned != 0 {
			t.Fatalf("expected duration %s to coerce to 0, got %+v", raw, walk)
		}
		if env == nil || env.DistanceWalkedKm != 0 || env.CarbonSavedKg != 0 {
			t.Fatalf("expected a zero environment row, got %+v", env)
		}
	}

	d, err := s.reports.Dashboard(ctx, u.ID, s.reports.Today())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.Summary.Distance != 2.5 || d.Summary.Minutes != 30 {
		t.Fatalf("expected only the real walk to count, got %+v", d.Summary)
	}
}

func TestLogFoodReportsWriteFailure(t *testing.T) {
	t.Parallel()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "closed.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	foods := services.NewFoodLogService(repository.NewLogRepository(db), calories.NewDefault(), time.UTC)
	if err := database.Close(db); err != nil {
		t.Fatalf("close: %v", err)
	}

	_, err = foods.LogFood(context.Background(), 1, services.FoodInput{FoodName: "apple"})
	if !errors.Is(err, apperrors.ErrDatabaseError) {
		t.Fatalf("expected database error, got %v", err)
	}
}

func TestDashboardEndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStack(t)

	u, err := s.users.RegisterUser(ctx, 1003, "tracker", "", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := s.foods.LogFood(ctx, u.ID, services.FoodInput{FoodName: "pizza", ManualCalories: "1200"}); err != nil {
		t.Fatalf("log food: %v", err)
	}
	if _, _, err := s.exercises.LogExercise(ctx, u.ID, "walking", "60"); err != nil {
		t.Fatalf("log walk: %v", err)
	}

	d, err := s.reports.Dashboard(ctx, u.ID, s.reports.Today())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(d.Week) != 7 || d.Week[6].Day != "2024-01-10" {
		t.Fatalf("expected 7-day window ending today, got %+v", d.Week)
	}
	if d.Today.Calories != 1200 || d.Today.Burned != 245 || d.Today.Net != 955 {
		t.Fatalf("unexpected today block %+v", d.Today)
	}
	if d.Summary.Distance != 5 || d.Streak != 1 || len(d.Unavailable) != 0 {
		t.Fatalf("unexpected summary %+v streak %d unavailable %v", d.Summary, d.Streak, d.Unavailable)
	}
	if d.Suggestions.BalanceNote.Kind != report.NoteReminder {
		t.Fatalf("expected surplus reminder for net 955, got %+v", d.Suggestions.BalanceNote)
	}
	if earned := report.EarnedBadges(d.Badges); len(earned) != 1 || earned[0].Key != "first_km" {
		t.Fatalf("expected only the first km badge, got %+v", earned)
	}
	if len(d.RecentFoods) != 1 || d.RecentFoods[0].FoodName != "pizza" {
		t.Fatalf("unexpected recent foods %+v", d.RecentFoods)
	}
	if d.Quote != services.StaticQuote(fixedNow) {
		t.Fatalf("expected static quote, got %q", d.Quote)
	}

	total, err := s.reports.TotalCaloriesConsumed(ctx, u.ID)
	if err != nil || total != 1200 {
		t.Fatalf("expected total 1200, got %.1f (%v)", total, err)
	}
}

type brokenReader struct {
	domain.LogReader
	food []report.FoodDayRow
}

func (b brokenReader) FoodByDay(context.Context, uint, time.Time, time.Time) ([]report.FoodDayRow, error) {
	return b.food, nil
}

func (brokenReader) ExerciseByDay(context.Context, uint, time.Time, time.Time) ([]report.ExerciseDayRow, error) {
	return nil, errors.New("exercise table locked")
}

func (brokenReader) ExerciseDetails(context.Context, uint, time.Time, time.Time) ([]report.ExerciseDetailRow, error) {
	return nil, errors.New("exercise table locked")
}

func (brokenReader) EnvironmentByDay(context.Context, uint, time.Time, time.Time) ([]report.EnvironmentDayRow, error) {
	return nil, errors.New("environment table missing")
}

func (brokenReader) RecentFoods(context.Context, uint, int) ([]domain.RecentFood, error) {
	return nil, errors.New("timeout")
}

func TestDashboardDegradesPerSignal(t *testing.T) {
	t.Parallel()
	reader := brokenReader{food: []report.FoodDayRow{{Day: "2024-01-10", Calories: 1800, Items: 3}}}
	svc := services.NewReportService(reader, nil, time.UTC)

	d, err := svc.Dashboard(context.Background(), 7, fixedNow)
	if err != nil {
		t.Fatalf("dashboard must not fail on secondary signals: %v", err)
	}
	want := []string{services.SignalExercise, services.SignalDetails, services.SignalEnvironment, services.SignalRecentFoods}
	if len(d.Unavailable) != len(want) {
		t.Fatalf("expected unavailable %v, got %v", want, d.Unavailable)
	}
	for i := range want {
		if d.Unavailable[i] != want[i] {
			t.Fatalf("expected unavailable %v, got %v", want, d.Unavailable)
		}
	}
	if d.Summary.CaloriesIn != 1800 || d.Summary.CaloriesBurned != 0 || len(d.Week) != 7 {
		t.Fatalf("expected food data with zero exercise, got %+v", d.Summary)
	}
	if d.RecentFoods == nil {
		t.Fatalf("expected empty recent foods list, got nil")
	}
}

func TestParseProfile(t *testing.T) {
	t.Parallel()
	p, err := services.ParseProfile("72.5, 180, -")
	if err != nil {
		t.Fatalf("parse profile: %v", err)
	}
	if *p.WeightKg != 72.5 || *p.HeightCm != 180 || p.Age != nil {
		t.Fatalf("unexpected profile %+v", p)
	}
	for _, bad := range []string{"70 175", "heavy 175 30", "70 175 300", "5 175 30"} {
		if _, err := services.ParseProfile(bad); apperrors.TypeOf(err) != apperrors.ErrorTypeValidation {
			t.Fatalf("expected validation error for %q, got %v", bad, err)
		}
	}
}

func TestIsWalking(t *testing.T) {
	t.Parallel()
	if !services.IsWalking("Walking") || !services.IsWalking("  walking ") {
		t.Fatalf("expected plain walking to count")
	}
	for _, other := range []string{"running", "walking fast", "dog walking", "walk"} {
		if services.IsWalking(other) {
			t.Fatalf("expected %q not to count as walking", other)
		}
	}
}
