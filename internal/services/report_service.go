package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
	"github.com/vladimiradmaev/fitness-helper/internal/report"
	"github.com/vladimiradmaev/fitness-helper/internal/utils"
)

// RecentFoodsLimit is how many food entries the dashboard lists
const RecentFoodsLimit = 10

// Signal names reported in Dashboard.Unavailable
const (
	SignalFood        = "food"
	SignalExercise    = "exercise"
	SignalDetails     = "exercise_details"
	SignalEnvironment = "environment"
	SignalRecentFoods = "recent_foods"
)

// Quoter supplies the motivational line of the day
type Quoter interface {
	Quote(ctx context.Context, day time.Time) string
}

// TodayTotals is the "today" block of the dashboard
type TodayTotals struct {
	Calories      float64 `json:"calories"`
	FoodItems     int     `json:"food_items"`
	Burned        float64 `json:"burned"`
	Net           float64 `json:"net"`
	CarbonSavedKg float64 `json:"co2_saved"`
}

// Dashboard is everything needed to render the weekly view
type Dashboard struct {
	Date        string               `json:"date"`
	Today       TodayTotals          `json:"today"`
	RecentFoods []domain.RecentFood  `json:"recent_foods"`
	Week        []report.DayEntry    `json:"weekly_report"`
	Summary     report.WeeklySummary `json:"weekly_summary"`
	Streak      int                  `json:"tracking_streak"`
	Badges      []report.Badge       `json:"badges"`
	Suggestions report.Suggestions   `json:"suggestions"`
	Quote       string               `json:"quote"`
	Unavailable []string             `json:"unavailable,omitempty"`
}

type ReportService struct {
	logs       domain.LogReader
	quoter     Quoter
	errHandler *apperrors.Handler
	clock      clock
}

func NewReportService(logs domain.LogReader, quoter Quoter, loc *time.Location) *ReportService {
	if quoter == nil {
		quoter = NewCoachServiceWithGenerators()
	}
	return &ReportService{
		logs:       logs,
		quoter:     quoter,
		errHandler: apperrors.NewHandler(logger.GetLogger()),
		clock:      newClock(loc),
	}
}

// WithClock replaces the time source
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.clock.now = now
	return s
}

// Today returns the current time in the configured timezone
func (s *ReportService) Today() time.Time {
	return s.clock.Now()
}

// Dashboard builds the 7-day report ending on today. A signal whose query
// fails is treated as empty and named in Unavailable; it never fails the view.
func (s *ReportService) Dashboard(ctx context.Context, userID uint, today time.Time) (*Dashboard, error) {
	today = utils.StartOfDay(today.In(s.clock.loc))
	start, end := utils.WeekWindow(today)

	var (
		rows        report.Rows
		unavailable []string
		err         error
	)
	degrade := func(signal string, err error) {
		s.errHandler.Handle(ctx, apperrors.NewPartialDataError(err, signal).
			WithContext("user_id", userID))
		unavailable = append(unavailable, signal)
	}

	if rows.Food, err = s.logs.FoodByDay(ctx, userID, start, end); err != nil {
		rows.Food = nil
		degrade(SignalFood, err)
	}
	if rows.Exercise, err = s.logs.ExerciseByDay(ctx, userID, start, end); err != nil {
		rows.Exercise = nil
		degrade(SignalExercise, err)
	}
	if rows.Details, err = s.logs.ExerciseDetails(ctx, userID, start, end); err != nil {
		rows.Details = nil
		degrade(SignalDetails, err)
	}
	if rows.Environment, err = s.logs.EnvironmentByDay(ctx, userID, start, end); err != nil {
		rows.Environment = nil
		degrade(SignalEnvironment, err)
	}
	recent, err := s.logs.RecentFoods(ctx, userID, RecentFoodsLimit)
	if err != nil {
		recent = nil
		degrade(SignalRecentFoods, err)
	}
	if recent == nil {
		recent = []domain.RecentFood{}
	}

	buckets, err := report.Aggregate(start, end, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate logs: %w", err)
	}
	week, summary := report.BuildWeekly(today, buckets)

	todayBucket, _ := buckets.Get(utils.DayKey(today))
	totals := TodayTotals{
		Calories:      todayBucket.CaloriesIn,
		FoodItems:     todayBucket.FoodItems,
		Burned:        todayBucket.CaloriesOut,
		Net:           todayBucket.CaloriesIn - todayBucket.CaloriesOut,
		CarbonSavedKg: todayBucket.CarbonSavedKg,
	}

	streak := report.ComputeStreak(week)
	return &Dashboard{
		Date:        utils.DayKey(today),
		Today:       totals,
		RecentFoods: recent,
		Week:        week,
		Summary:     summary,
		Streak:      streak,
		Badges:      report.EvaluateBadges(summary, streak),
		Suggestions: report.GenerateSuggestions(summary, streak, totals.Net),
		Quote:       s.quoter.Quote(ctx, today),
		Unavailable: unavailable,
	}, nil
}

// TotalCaloriesConsumed returns the all-time food calories for a user
func (s *ReportService) TotalCaloriesConsumed(ctx context.Context, userID uint) (float64, error) {
	total, err := s.logs.TotalCaloriesConsumed(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get calorie summary: %w", err)
	}
	return total, nil
}
