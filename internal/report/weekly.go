package report

import (
	"math"
	"time"

	"github.com/vladimiradmaev/fitness-helper/internal/utils"
)

// ExerciseItem is a rounded session line shown under a day
type ExerciseItem struct {
	Activity       string `json:"activity"`
	Minutes        int    `json:"duration"`
	CaloriesBurned int    `json:"calories_burned"`
}

// DayEntry is one row of the weekly report
type DayEntry struct {
	Day             string         `json:"date"`
	Label           string         `json:"date_label"`
	CaloriesIn      int            `json:"calories_in"`
	CaloriesOut     int            `json:"calories_out"`
	ExerciseMinutes int            `json:"exercise_minutes"`
	Sessions        int            `json:"sessions"`
	FoodItems       int            `json:"food_items"`
	DistanceKm      float64        `json:"distance"`
	CarbonSavedKg   float64        `json:"carbon_saved"`
	Exercises       []ExerciseItem `json:"exercises"`
}

// Active reports whether anything was logged on the day
func (d DayEntry) Active() bool {
	return d.CaloriesIn > 0 || d.CaloriesOut > 0 || d.ExerciseMinutes > 0
}

// WeeklySummary holds the 7-day totals and derived figures
type WeeklySummary struct {
	CaloriesIn     int     `json:"calories_in"`
	CaloriesBurned int     `json:"calories_burned"`
	Minutes        int     `json:"minutes"`
	Distance       float64 `json:"distance"`
	CarbonSaved    float64 `json:"carbon_saved"`
	Sessions       int     `json:"sessions"`
	AverageIn      int     `json:"average_in"`
	AverageBurned  int     `json:"average_burned"`
	CalorieBalance int     `json:"calorie_balance"`
	DaysLogged     int     `json:"days_logged"`
	DaysActive     int     `json:"days_active"`
}

// BuildWeekly lays out the 7 days ending today, oldest first, and sums them.
// Days missing from buckets appear as zero rows.
func BuildWeekly(today time.Time, buckets Buckets) ([]DayEntry, WeeklySummary) {
	start, _ := utils.WeekWindow(today)

	entries := make([]DayEntry, 0, utils.WeekDays)
	var (
		summary          WeeklySummary
		distance, carbon float64
	)

	for i := 0; i < utils.WeekDays; i++ {
		day := utils.AddDays(start, i)
		key := utils.DayKey(day)
		bucket, _ := buckets.Get(key)

		entry := DayEntry{
			Day:             key,
			Label:           utils.DayLabel(day),
			CaloriesIn:      roundInt(bucket.CaloriesIn),
			CaloriesOut:     roundInt(bucket.CaloriesOut),
			ExerciseMinutes: roundInt(bucket.ExerciseMinutes),
			Sessions:        bucket.Sessions,
			FoodItems:       bucket.FoodItems,
			DistanceKm:      round2(bucket.DistanceKm),
			CarbonSavedKg:   round2(bucket.CarbonSavedKg),
			Exercises:       make([]ExerciseItem, 0, len(bucket.Exercises)),
		}
		for _, ex := range bucket.Exercises {
			entry.Exercises = append(entry.Exercises, ExerciseItem{
				Activity:       ex.Activity,
				Minutes:        roundInt(ex.DurationMinutes),
				CaloriesBurned: roundInt(ex.CaloriesBurned),
			})
		}
		entries = append(entries, entry)

		summary.CaloriesIn += entry.CaloriesIn
		summary.CaloriesBurned += entry.CaloriesOut
		summary.Minutes += entry.ExerciseMinutes
		summary.Sessions += entry.Sessions
		distance += bucket.DistanceKm
		carbon += bucket.CarbonSavedKg

		if entry.CaloriesIn > 0 || entry.CaloriesOut > 0 {
			summary.DaysLogged++
		}
		if entry.ExerciseMinutes > 0 {
			summary.DaysActive++
		}
	}

	summary.Distance = round2(distance)
	summary.CarbonSaved = round2(carbon)
	summary.AverageIn = roundInt(float64(summary.CaloriesIn) / float64(len(entries)))
	summary.AverageBurned = roundInt(float64(summary.CaloriesBurned) / float64(len(entries)))
	summary.CalorieBalance = summary.CaloriesIn - summary.CaloriesBurned

	return entries, summary
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
