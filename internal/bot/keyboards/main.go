package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data values
const (
	CallbackLogFood      = "log_food"
	CallbackLogExercise  = "log_exercise"
	CallbackWeeklyReport = "weekly_report"
	CallbackProfile      = "profile"
	CallbackEditProfile  = "edit_profile"
	CallbackMainMenu     = "main_menu"
	CallbackHelp         = "help"
	CallbackSkipCalories = "skip_calories"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍎 Log food", CallbackLogFood),
			tgbotapi.NewInlineKeyboardButtonData("🏃 Log exercise", CallbackLogExercise),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Weekly report", CallbackWeeklyReport),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Profile", CallbackProfile),
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", CallbackHelp),
		),
	)
}

// BackToMenu is a single "main menu" button
func BackToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", CallbackMainMenu),
		),
	)
}

// AfterLog offers the next likely actions after an entry was saved
func AfterLog(again string) tgbotapi.InlineKeyboardMarkup {
	label := "➕ Log more food"
	if again == CallbackLogExercise {
		label = "➕ Log another workout"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, again),
			tgbotapi.NewInlineKeyboardButtonData("📊 Weekly report", CallbackWeeklyReport),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", CallbackMainMenu),
		),
	)
}

// ManualCalories lets the user skip entering calories for an unknown food
func ManualCalories() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭️ Skip (0 kcal)", CallbackSkipCalories),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Cancel", CallbackMainMenu),
		),
	)
}

// ProfileMenu creates the profile keyboard
func ProfileMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Update", CallbackEditProfile),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", CallbackMainMenu),
		),
	)
}
