package report

// Badge thresholds
const (
	BadgeWalkKm        = 1.0
	BadgeStreakDays    = 7
	BadgeBurnedCalorie = 2000
)

// Badge is a milestone evaluated on every view; nothing is persisted
type Badge struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

// ComputeStreak counts consecutive active days from the newest entry back.
// It can never exceed len(entries).
func ComputeStreak(entries []DayEntry) int {
	streak := 0
	for i := len(entries) - 1; i >= 0; i-- {
		if !entries[i].Active() {
			break
		}
		streak++
	}
	return streak
}

// EvaluateBadges returns the fixed badge list with Earned filled in
func EvaluateBadges(summary WeeklySummary, streak int) []Badge {
	return []Badge{
		{
			Key:         "first_km",
			Title:       "First 1 km walk",
			Description: "Walk a total of 1 km to unlock",
			Icon:        "🚶",
			Earned:      summary.Distance >= BadgeWalkKm,
		},
		{
			Key:         "seven_day_streak",
			Title:       "7-day tracking streak",
			Description: "Log meals or workouts every day for a week",
			Icon:        "🔥",
			Earned:      streak >= BadgeStreakDays,
		},
		{
			Key:         "burned_2000",
			Title:       "2000 calories burned",
			Description: "Burn 2000 kcal through workouts",
			Icon:        "🏅",
			Earned:      summary.CaloriesBurned >= BadgeBurnedCalorie,
		},
	}
}

// EarnedBadges filters badges down to the earned ones
func EarnedBadges(badges []Badge) []Badge {
	var earned []Badge
	for _, b := range badges {
		if b.Earned {
			earned = append(earned, b)
		}
	}
	return earned
}
