package menus

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	"github.com/vladimiradmaev/fitness-helper/internal/services"
)

// Sender is the part of the Telegram API the bot writes through
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

const recentFoodsShown = 5

// HelpText lists commands and input formats
const HelpText = `*Fitness Helper* commands:
/start - Show the main menu
/report - Weekly report for the last 7 days
/profile - Show or update weight, height and age
/help - Show this message

*Logging food:* send the name and how many pieces, e.g. ` + "`banana 2`" + `.
Fruits are estimated automatically. For other foods add calories: ` + "`pizza 1 350`" + `.

*Logging exercise:* send the activity and minutes, e.g. ` + "`running fast 30`" + `.
Walking also counts distance and CO2 saved.

*Profile:* send ` + "`weight height age`" + `, e.g. ` + "`70 175 30`" + `.`

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	text := `🏋️ *Fitness Helper* tracks what you eat and how you move.

🍎 Log food and get calories for common fruits
🏃 Log workouts and get calories burned from your profile
📊 See your weekly report with streaks, badges and tips

Choose an action:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendText sends a Markdown message with an optional keyboard.
// If Telegram rejects the markup the text is resent as plain text.
func SendText(api Sender, chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	if _, err := api.Send(msg); err != nil {
		msg.ParseMode = ""
		if _, err := api.Send(msg); err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
	}
	return nil
}

// SendWeeklyReport renders the dashboard into a chat
func SendWeeklyReport(api Sender, chatID int64, d *services.Dashboard) error {
	kb := keyboards.BackToMenu()
	return SendText(api, chatID, FormatWeeklyReport(d), &kb)
}

// FormatWeeklyReport renders a dashboard as a Telegram Markdown message
func FormatWeeklyReport(d *services.Dashboard) string {
	var sb strings.Builder

	if len(d.Week) > 0 {
		fmt.Fprintf(&sb, "📊 *Weekly report* (%s to %s)\n\n", d.Week[0].Label, d.Week[len(d.Week)-1].Label)
	} else {
		sb.WriteString("📊 *Weekly report*\n\n")
	}

	sb.WriteString("*Today*\n")
	fmt.Fprintf(&sb, "🍽️ In: %.0f kcal (%d items)\n", d.Today.Calories, d.Today.FoodItems)
	fmt.Fprintf(&sb, "🔥 Burned: %.0f kcal\n", d.Today.Burned)
	fmt.Fprintf(&sb, "⚖️ Net: %+.0f kcal\n", d.Today.Net)
	if d.Today.CarbonSavedKg > 0 {
		fmt.Fprintf(&sb, "🌱 CO2 saved: %.2f kg\n", d.Today.CarbonSavedKg)
	}

	sb.WriteString("\n*Last 7 days*\n```\n")
	for _, e := range d.Week {
		fmt.Fprintf(&sb, "%s  in %5d  out %5d  %3d min\n", e.Label, e.CaloriesIn, e.CaloriesOut, e.ExerciseMinutes)
	}
	sb.WriteString("```\n")

	s := d.Summary
	sb.WriteString("\n*Summary*\n")
	fmt.Fprintf(&sb, "In: %d kcal (avg %d/day)\n", s.CaloriesIn, s.AverageIn)
	fmt.Fprintf(&sb, "Burned: %d kcal (avg %d/day)\n", s.CaloriesBurned, s.AverageBurned)
	fmt.Fprintf(&sb, "Balance: %+d kcal\n", s.CalorieBalance)
	fmt.Fprintf(&sb, "Workouts: %d sessions, %d min\n", s.Sessions, s.Minutes)
	if s.Distance > 0 {
		fmt.Fprintf(&sb, "Walked: %.2f km, CO2 saved %.2f kg\n", s.Distance, s.CarbonSaved)
	}
	fmt.Fprintf(&sb, "Logged %d/7 days, active %d/7 days\n", s.DaysLogged, s.DaysActive)

	fmt.Fprintf(&sb, "\n🔥 Streak: %d %s\n", d.Streak, plural(d.Streak, "day", "days"))

	sb.WriteString("\n*Badges*\n")
	for _, b := range d.Badges {
		if b.Earned {
			fmt.Fprintf(&sb, "✅ %s %s\n", b.Icon, b.Title)
		} else {
			fmt.Fprintf(&sb, "⬜ %s %s: %s\n", b.Icon, b.Title, b.Description)
		}
	}

	sb.WriteString("\n*Suggestions*\n")
	fmt.Fprintf(&sb, "🥗 %s\n", EscapeMarkdown(d.Suggestions.DietTip))
	fmt.Fprintf(&sb, "💪 %s\n", EscapeMarkdown(d.Suggestions.WorkoutTip))
	fmt.Fprintf(&sb, "💡 %s: %s\n", d.Suggestions.BalanceNote.Title, EscapeMarkdown(d.Suggestions.BalanceNote.Message))
	fmt.Fprintf(&sb, "⭐ %s: %s\n", d.Suggestions.StreakNote.Title, EscapeMarkdown(d.Suggestions.StreakNote.Message))

	if len(d.RecentFoods) > 0 {
		sb.WriteString("\n*Recent foods*\n")
		for i, f := range d.RecentFoods {
			if i == recentFoodsShown {
				break
			}
			fmt.Fprintf(&sb, "• %s x%d: %.1f kcal (%s)\n", EscapeMarkdown(f.FoodName), f.Quantity, f.Calories, f.LoggedAt.Format("02 Jan 15:04"))
		}
	}

	if d.Quote != "" {
		fmt.Fprintf(&sb, "\n_%s_\n", EscapeMarkdown(d.Quote))
	}
	if len(d.Unavailable) > 0 {
		fmt.Fprintf(&sb, "\n⚠️ Some data could not be loaded: %s\n", EscapeMarkdown(strings.Join(d.Unavailable, ", ")))
	}

	return sb.String()
}

// FormatFoodLogged confirms a saved food entry
func FormatFoodLogged(e *domain.FoodLogEntry) string {
	source := "manual"
	if e.Estimated {
		source = "estimated"
	}
	return fmt.Sprintf("✅ Logged *%s* x%d: %.1f kcal (%s)", EscapeMarkdown(e.FoodName), e.Quantity, e.Calories, source)
}

// FormatExerciseLogged confirms a saved exercise entry
func FormatExerciseLogged(e *domain.ExerciseLogEntry, env *domain.EnvironmentLogEntry) string {
	text := fmt.Sprintf("✅ Logged *%s* for %d min: %.1f kcal burned (MET %.1f)",
		EscapeMarkdown(e.Activity), e.DurationMinutes, e.CaloriesBurned, e.MET)
	if env != nil {
		text += fmt.Sprintf("\n🌱 %.2f km walked, %.2f kg CO2 saved", env.DistanceWalkedKm, env.CarbonSavedKg)
	}
	return text
}

// FormatProfile shows stored biometrics, marking defaults
func FormatProfile(p domain.UserProfile) string {
	filled := p.WithDefaults()
	weight := fmt.Sprintf("%.1f kg", *filled.WeightKg)
	if p.WeightKg == nil {
		weight += " (default)"
	}
	height := fmt.Sprintf("%.0f cm", *filled.HeightCm)
	if p.HeightCm == nil {
		height += " (default)"
	}
	age := fmt.Sprintf("%d", *filled.Age)
	if p.Age == nil {
		age += " (default)"
	}
	return fmt.Sprintf("👤 *Your profile*\n\n⚖️ Weight: %s\n📏 Height: %s\n🎂 Age: %s\n\nCalories burned are calculated from these values.", weight, height, age)
}

// SendProfile shows the profile with its keyboard
func SendProfile(api Sender, chatID int64, p domain.UserProfile) error {
	kb := keyboards.ProfileMenu()
	return SendText(api, chatID, FormatProfile(p), &kb)
}

// EscapeMarkdown escapes the characters legacy Markdown treats as markup
func EscapeMarkdown(s string) string {
	r := strings.NewReplacer("_", "\\_", "*", "\\*", "[", "\\[", "`", "\\`")
	return strings.ToValidUTF8(r.Replace(s), "")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
