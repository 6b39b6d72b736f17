package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/vladimiradmaev/fitness-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/menus"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/state"
	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/fitness-helper/internal/errors"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
	"github.com/vladimiradmaev/fitness-helper/internal/services"
)

const (
	foodPrompt     = "🍎 Send what you ate and how many pieces, e.g. `banana 2`.\nFor foods other than fruit add calories: `pizza 1 350`."
	exercisePrompt = "🏃 Send the activity and minutes, e.g. `running fast 30` or `walking 45`."
	profilePrompt  = "✏️ Send `weight height age`, e.g. `70 175 30`. Use `-` to leave a value unset."
	saveFailedText = "Something went wrong while saving. Please try again."
)

func promptFood(api menus.Sender, sm state.StateManager, chatID int64, user *domain.User) error {
	sm.SetUserState(user.TelegramID, state.WaitingForFood)
	kb := keyboards.BackToMenu()
	return menus.SendText(api, chatID, foodPrompt, &kb)
}

func promptExercise(api menus.Sender, sm state.StateManager, chatID int64, user *domain.User) error {
	sm.SetUserState(user.TelegramID, state.WaitingForExercise)
	kb := keyboards.BackToMenu()
	return menus.SendText(api, chatID, exercisePrompt, &kb)
}

func promptProfile(api menus.Sender, sm state.StateManager, chatID int64, user *domain.User) error {
	sm.SetUserState(user.TelegramID, state.WaitingForProfile)
	kb := keyboards.BackToMenu()
	return menus.SendText(api, chatID, profilePrompt, &kb)
}

// logFood parses a food message. Unknown foods without calories switch the
// chat to manual calorie entry instead of logging right away.
func logFood(ctx context.Context, api menus.Sender, deps Dependencies, sm state.StateManager, chatID int64, user *domain.User, text string) error {
	in, err := ParseFoodMessage(text)
	if err != nil {
		kb := keyboards.BackToMenu()
		return menus.SendText(api, chatID, foodPrompt, &kb)
	}

	if in.ManualCalories == "" && deps.Estimator != nil {
		if _, ok := deps.Estimator.MatchFruit(in.FoodName); !ok {
			sm.SetTempData(user.TelegramID, state.KeyFoodName, in.FoodName)
			sm.SetTempData(user.TelegramID, state.KeyFoodQuantity, in.Quantity)
			sm.SetUserState(user.TelegramID, state.WaitingForManualCalories)
			kb := keyboards.ManualCalories()
			return menus.SendText(api, chatID,
				"🤔 I don't know the calories for *"+menus.EscapeMarkdown(in.FoodName)+"*.\nSend the total calories as a number, or skip to log 0 kcal.", &kb)
		}
	}

	return saveFood(ctx, api, deps, sm, chatID, user, in)
}

func saveFood(ctx context.Context, api menus.Sender, deps Dependencies, sm state.StateManager, chatID int64, user *domain.User, in services.FoodInput) error {
	entry, err := deps.FoodLogSvc.LogFood(ctx, user.ID, in)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to log food", "error", err, "user_id", user.ID)
		return menus.SendText(api, chatID, saveFailedText, nil)
	}
	sm.SetUserState(user.TelegramID, state.None)
	sm.ClearTempData(user.TelegramID)

	kb := keyboards.AfterLog(keyboards.CallbackLogFood)
	return menus.SendText(api, chatID, menus.FormatFoodLogged(entry), &kb)
}

// pendingFood rebuilds the food input stored while waiting for calories
func pendingFood(sm state.StateManager, user *domain.User, manual string) (services.FoodInput, bool) {
	name, ok := sm.GetTempData(user.TelegramID, state.KeyFoodName)
	if !ok || name == "" {
		return services.FoodInput{}, false
	}
	quantity, _ := sm.GetTempData(user.TelegramID, state.KeyFoodQuantity)
	return services.FoodInput{FoodName: name, Quantity: quantity, ManualCalories: manual}, true
}

func logExercise(ctx context.Context, api menus.Sender, deps Dependencies, sm state.StateManager, chatID int64, user *domain.User, text string) error {
	activity, duration, err := ParseExerciseMessage(text)
	if err != nil {
		kb := keyboards.BackToMenu()
		return menus.SendText(api, chatID, exercisePrompt, &kb)
	}
	if _, err := strconv.ParseFloat(duration, 64); err != nil {
		kb := keyboards.BackToMenu()
		return menus.SendText(api, chatID, "⏱️ The last word should be the duration in minutes, e.g. `yoga 20`.", &kb)
	}

	entry, env, err := deps.ExerciseLogSvc.LogExercise(ctx, user.ID, activity, duration)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to log exercise", "error", err, "user_id", user.ID)
		return menus.SendText(api, chatID, saveFailedText, nil)
	}
	sm.SetUserState(user.TelegramID, state.None)

	kb := keyboards.AfterLog(keyboards.CallbackLogExercise)
	return menus.SendText(api, chatID, menus.FormatExerciseLogged(entry, env), &kb)
}

func saveProfile(ctx context.Context, api menus.Sender, deps Dependencies, sm state.StateManager, chatID int64, user *domain.User, text string) error {
	profile, err := services.ParseProfile(text)
	if err != nil {
		var appErr *apperrors.AppError
		msg := profilePrompt
		if errors.As(err, &appErr) {
			msg = "⚠️ " + appErr.Message + "\n\n" + profilePrompt
		}
		kb := keyboards.BackToMenu()
		return menus.SendText(api, chatID, msg, &kb)
	}

	if err := deps.UserService.UpdateProfile(ctx, user.ID, profile); err != nil {
		logger.WithContext(ctx).Error("Failed to update profile", "error", err, "user_id", user.ID)
		return menus.SendText(api, chatID, saveFailedText, nil)
	}
	sm.SetUserState(user.TelegramID, state.None)
	user.Profile = profile

	return menus.SendProfile(api, chatID, profile)
}

func sendReport(ctx context.Context, api menus.Sender, deps Dependencies, chatID int64, user *domain.User) error {
	dashboard, err := deps.ReportSvc.Dashboard(ctx, user.ID, deps.ReportSvc.Today())
	if err != nil {
		logger.WithContext(ctx).Error("Failed to build report", "error", err, "user_id", user.ID)
		return menus.SendText(api, chatID, "Could not build your report right now. Please try again later.", nil)
	}
	return menus.SendWeeklyReport(api, chatID, dashboard)
}
