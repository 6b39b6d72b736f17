package report

import (
	"time"

	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"github.com/vladimiradmaev/fitness-helper/internal/utils"
)

// FoodDayRow is food calories and item count grouped by calendar day
type FoodDayRow struct {
	Day      string
	Calories float64
	Items    int
}

// ExerciseDayRow is burned calories, minutes and sessions grouped by calendar day
type ExerciseDayRow struct {
	Day      string
	Calories float64
	Minutes  float64
	Sessions int
}

// ExerciseDetailRow is a single exercise session
type ExerciseDetailRow struct {
	Day             string
	Activity        string
	DurationMinutes float64
	CaloriesBurned  float64
	LoggedAt        time.Time
}

// EnvironmentDayRow is walking distance and CO2 saved grouped by calendar day
type EnvironmentDayRow struct {
	Day           string
	DistanceKm    float64
	CarbonSavedKg float64
}

// Rows bundles the per-signal store results for one date range.
// A nil slice means the signal had no data or could not be loaded.
type Rows struct {
	Food        []FoodDayRow
	Exercise    []ExerciseDayRow
	Details     []ExerciseDetailRow
	Environment []EnvironmentDayRow
}

// ExerciseDetail is a session attached to a day bucket
type ExerciseDetail struct {
	Activity        string
	DurationMinutes float64
	CaloriesBurned  float64
	LoggedAt        time.Time
}

// DailyBucket holds the per-day totals for one calendar day
type DailyBucket struct {
	Date            time.Time
	Day             string
	CaloriesIn      float64
	CaloriesOut     float64
	ExerciseMinutes float64
	Sessions        int
	FoodItems       int
	DistanceKm      float64
	CarbonSavedKg   float64
	Exercises       []ExerciseDetail
}

// Buckets is an oldest-first run of contiguous day buckets
type Buckets []DailyBucket

// Get returns the bucket for a YYYY-MM-DD key
func (b Buckets) Get(day string) (DailyBucket, bool) {
	for _, bucket := range b {
		if bucket.Day == day {
			return bucket, true
		}
	}
	return DailyBucket{}, false
}

// Aggregate folds grouped rows into one bucket per calendar day in
// [start, end]. Days with no rows are zero. Rows outside the range are
// ignored and rows repeating a day are summed.
func Aggregate(start, end time.Time, in Rows) (Buckets, error) {
	start = utils.StartOfDay(start)
	end = utils.StartOfDay(end.In(start.Location()))
	if start.After(end) {
		return nil, apperrors.New(apperrors.ErrorTypeValidation, apperrors.ErrInvalidRange.Code, apperrors.ErrInvalidRange.Message).
			WithContext("start", utils.DayKey(start)).
			WithContext("end", utils.DayKey(end))
	}

	days := utils.DaysBetween(start, end)
	buckets := make(Buckets, len(days))
	index := make(map[string]int, len(days))
	for i, d := range days {
		key := utils.DayKey(d)
		buckets[i] = DailyBucket{Date: d, Day: key}
		index[key] = i
	}

	for _, row := range in.Food {
		if i, ok := index[row.Day]; ok {
			buckets[i].CaloriesIn += nonNegative(row.Calories)
			buckets[i].FoodItems += row.Items
		}
	}
	for _, row := range in.Exercise {
		if i, ok := index[row.Day]; ok {
			buckets[i].CaloriesOut += nonNegative(row.Calories)
			buckets[i].ExerciseMinutes += nonNegative(row.Minutes)
			buckets[i].Sessions += row.Sessions
		}
	}
	for _, row := range in.Details {
		if i, ok := index[row.Day]; ok {
			buckets[i].Exercises = append(buckets[i].Exercises, ExerciseDetail{
				Activity:        row.Activity,
				DurationMinutes: nonNegative(row.DurationMinutes),
				CaloriesBurned:  nonNegative(row.CaloriesBurned),
				LoggedAt:        row.LoggedAt,
			})
		}
	}
	for _, row := range in.Environment {
		if i, ok := index[row.Day]; ok {
			buckets[i].DistanceKm += nonNegative(row.DistanceKm)
			buckets[i].CarbonSavedKg += nonNegative(row.CarbonSavedKg)
		}
	}

	return buckets, nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
