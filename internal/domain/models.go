package domain

import (
	"time"
)

// Biometric defaults used when a profile field is missing
const (
	DefaultWeightKg = 70.0
	DefaultHeightCm = 170.0
	DefaultAge      = 30
)

// User represents a registered user of the bot or API
type User struct {
	ID         uint
	CreatedAt  time.Time
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	Profile    UserProfile
}

// UserProfile holds the optional biometrics used by the exercise estimator
type UserProfile struct {
	WeightKg *float64
	HeightCm *float64
	Age      *int
}

// WithDefaults fills absent or non-positive fields with the standard defaults
func (p UserProfile) WithDefaults() UserProfile {
	out := p
	if out.WeightKg == nil || *out.WeightKg <= 0 {
		w := DefaultWeightKg
		out.WeightKg = &w
	}
	if out.HeightCm == nil || *out.HeightCm <= 0 {
		h := DefaultHeightCm
		out.HeightCm = &h
	}
	if out.Age == nil || *out.Age <= 0 {
		a := DefaultAge
		out.Age = &a
	}
	return out
}

// FoodLogEntry is an immutable record of something eaten
type FoodLogEntry struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	FoodName  string    `json:"food_name"`
	Quantity  int       `json:"quantity"`
	Calories  float64   `json:"calories"`
	Estimated bool      `json:"estimated"` // true when Calories came from the fruit table
	Day       string    `json:"date"`
	LoggedAt  time.Time `json:"logged_at"`
}

// ExerciseLogEntry is an immutable record of a workout session
type ExerciseLogEntry struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	Activity        string    `json:"activity"`
	DurationMinutes int       `json:"duration"`
	CaloriesBurned  float64   `json:"calories_burned"`
	MET             float64   `json:"met"`
	Day             string    `json:"date"`
	LoggedAt        time.Time `json:"logged_at"`
}

// EnvironmentLogEntry is derived from a walking session
type EnvironmentLogEntry struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	ExerciseLogID    uint      `json:"exercise_log_id"`
	DistanceWalkedKm float64   `json:"distance_walked"`
	CarbonSavedKg    float64   `json:"carbon_saved"`
	Day              string    `json:"date"`
	LoggedAt         time.Time `json:"logged_at"`
}

// RecentFood is a food log row shaped for display
type RecentFood struct {
	FoodName string    `json:"food_name"`
	Quantity int       `json:"quantity"`
	Calories float64   `json:"calories"`
	LoggedAt time.Time `json:"logged_at"`
}
