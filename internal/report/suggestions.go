package report

import "fmt"

// Suggestion thresholds
const (
	HighIntakeAverage   = 2200
	LowIntakeAverage    = 1600
	WeeklyMinutesGoal   = 150
	SurplusBalance      = 500
	DeficitBalance      = -300
	MinActiveDays       = 3
	TodaySurplus        = 500.0
	StreakBoosterMinDay = 3
)

// NoteKind classifies a short note for presentation
type NoteKind string

const (
	NoteReminder NoteKind = "reminder"
	NotePositive NoteKind = "positive"
	NoteTip      NoteKind = "tip"
)

// Note is a titled one-line message
type Note struct {
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Kind    NoteKind `json:"type"`
}

// Suggestions is the advice block rendered with the weekly report
type Suggestions struct {
	DietTip     string `json:"diet"`
	WorkoutTip  string `json:"workout"`
	BalanceNote Note   `json:"balance_note"`
	StreakNote  Note   `json:"streak_note"`
}

// GenerateSuggestions turns the weekly summary, streak and today's net
// calories into advice. Rules are evaluated in a fixed order.
func GenerateSuggestions(summary WeeklySummary, streak int, todayNet float64) Suggestions {
	return Suggestions{
		DietTip:     dietTip(summary),
		WorkoutTip:  workoutTip(summary),
		BalanceNote: balanceNote(todayNet),
		StreakNote:  streakNote(streak),
	}
}

func dietTip(s WeeklySummary) string {
	var tip string
	switch {
	case s.DaysLogged == 0:
		tip = "Start logging your meals this week so we can tailor suggestions for you."
	case s.AverageIn > HighIntakeAverage:
		tip = fmt.Sprintf("You're averaging %d kcal per day. Consider lighter meals with lean protein and veggies to balance your intake.", s.AverageIn)
	case s.AverageIn < LowIntakeAverage:
		tip = fmt.Sprintf("Your daily intake averages %d kcal. Make sure you're fueling enough with whole grains, healthy fats, and protein.", s.AverageIn)
	default:
		tip = "Your calorie intake sits in a steady range. Keep focusing on whole foods, hydration, and consistency."
	}

	if s.DaysLogged > 0 {
		switch {
		case s.CalorieBalance > SurplusBalance:
			tip += " Try dialing back sugary snacks to help close the calorie gap."
		case s.CalorieBalance < DeficitBalance:
			tip += " You're running a calorie deficit. Make sure you're recovering well and getting enough nutrients."
		}
	}
	return tip
}

func workoutTip(s WeeklySummary) string {
	var tip string
	switch {
	case s.Minutes <= 0:
		tip = "No workouts recorded yet. Schedule three short sessions this week to get moving."
	case s.Minutes < WeeklyMinutesGoal:
		tip = fmt.Sprintf("You logged %d workout minutes this week. Add %d more minutes with brisk walks or quick home sessions to hit the %d-minute goal.",
			s.Minutes, WeeklyMinutesGoal-s.Minutes, WeeklyMinutesGoal)
	default:
		tip = fmt.Sprintf("Great job! %d workout minutes logged this week. Maintain the streak with mix of strength and mobility.", s.Minutes)
	}

	if s.DaysActive < MinActiveDays {
		tip += " Aim to be active on at least 3 days next week to build momentum."
	}
	return tip
}

func balanceNote(todayNet float64) Note {
	if todayNet > TodaySurplus {
		return Note{
			Title:   "Balance reminder",
			Message: "You are in a calorie surplus today. Add a light cardio session or swap sugary snacks.",
			Kind:    NoteReminder,
		}
	}
	return Note{
		Title:   "Great balance",
		Message: "Your calorie balance looks on track. Keep meals colorful and hydrated.",
		Kind:    NotePositive,
	}
}

func streakNote(streak int) Note {
	if streak < StreakBoosterMinDay {
		return Note{
			Title:   "Build your streak",
			Message: "Log something tomorrow to push your streak higher and unlock badges.",
			Kind:    NoteTip,
		}
	}
	return Note{
		Title:   "Streak booster",
		Message: fmt.Sprintf("You are on a %d-day streak. Schedule tomorrow's meal log now.", streak),
		Kind:    NotePositive,
	}
}
