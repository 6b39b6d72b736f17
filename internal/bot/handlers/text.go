package handlers

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/menus"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/state"
	"github.com/vladimiradmaev/fitness-helper/internal/domain"
)

// TextHandler handles text messages
type TextHandler struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
}

// NewTextHandler creates a new text handler
func NewTextHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *TextHandler {
	return &TextHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch h.stateManager.GetUserState(user.TelegramID) {
	case state.WaitingForFood:
		return logFood(ctx, h.api, h.deps, h.stateManager, chatID, user, text)
	case state.WaitingForManualCalories:
		return h.handleManualCalories(ctx, chatID, user, text)
	case state.WaitingForExercise:
		return logExercise(ctx, h.api, h.deps, h.stateManager, chatID, user, text)
	case state.WaitingForProfile:
		return saveProfile(ctx, h.api, h.deps, h.stateManager, chatID, user, text)
	default:
		return h.handleDefaultText(chatID)
	}
}

// handleManualCalories completes a pending unknown food with typed calories
func (h *TextHandler) handleManualCalories(ctx context.Context, chatID int64, user *domain.User, text string) error {
	text = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(text), "kcal"))
	if v, err := strconv.ParseFloat(text, 64); err != nil || v < 0 {
		kb := keyboards.ManualCalories()
		return menus.SendText(h.api, chatID, "Please send calories as a number, e.g. `350`.", &kb)
	}

	in, ok := pendingFood(h.stateManager, user, text)
	if !ok {
		h.stateManager.SetUserState(user.TelegramID, state.None)
		return menus.SendMainMenu(h.api, chatID)
	}
	return saveFood(ctx, h.api, h.deps, h.stateManager, chatID, user, in)
}

// handleDefaultText handles text outside of any flow
func (h *TextHandler) handleDefaultText(chatID int64) error {
	return menus.SendMainMenu(h.api, chatID)
}
