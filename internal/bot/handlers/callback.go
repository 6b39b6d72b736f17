package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/menus"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/state"
	"github.com/vladimiradmaev/fitness-helper/internal/domain"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *CallbackHandler {
	return &CallbackHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, user *domain.User) error {
	// Answer the callback query first
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		logger.WithContext(ctx).Warn("Failed to answer callback", "error", err)
	}
	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID

	switch query.Data {
	case keyboards.CallbackLogFood:
		return promptFood(h.api, h.stateManager, chatID, user)
	case keyboards.CallbackLogExercise:
		return promptExercise(h.api, h.stateManager, chatID, user)
	case keyboards.CallbackWeeklyReport:
		return sendReport(ctx, h.api, h.deps, chatID, user)
	case keyboards.CallbackProfile:
		return menus.SendProfile(h.api, chatID, user.Profile)
	case keyboards.CallbackEditProfile:
		return promptProfile(h.api, h.stateManager, chatID, user)
	case keyboards.CallbackSkipCalories:
		return h.handleSkipCalories(ctx, chatID, user)
	case keyboards.CallbackHelp:
		kb := keyboards.BackToMenu()
		return menus.SendText(h.api, chatID, menus.HelpText, &kb)
	case keyboards.CallbackMainMenu:
		return h.handleMainMenu(chatID, user)
	default:
		return h.handleUnknownCallback(chatID)
	}
}

// handleSkipCalories logs the pending unknown food at 0 kcal
func (h *CallbackHandler) handleSkipCalories(ctx context.Context, chatID int64, user *domain.User) error {
	in, ok := pendingFood(h.stateManager, user, "")
	if !ok {
		return h.handleMainMenu(chatID, user)
	}
	return saveFood(ctx, h.api, h.deps, h.stateManager, chatID, user, in)
}

func (h *CallbackHandler) handleMainMenu(chatID int64, user *domain.User) error {
	h.stateManager.SetUserState(user.TelegramID, state.None)
	h.stateManager.ClearTempData(user.TelegramID)
	return menus.SendMainMenu(h.api, chatID)
}

func (h *CallbackHandler) handleUnknownCallback(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Unknown action")
	_, err := h.api.Send(msg)
	return err
}
