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

// CommandHandler handles bot commands
type CommandHandler struct {
	api          menus.Sender
	deps         Dependencies
	stateManager state.StateManager
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *CommandHandler {
	return &CommandHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	logger.WithContext(ctx).Info("Handling command", "command", message.Command(), "user_id", user.ID)

	switch message.Command() {
	case "start":
		h.stateManager.SetUserState(user.TelegramID, state.None)
		h.stateManager.ClearTempData(user.TelegramID)
		return menus.SendMainMenu(h.api, message.Chat.ID)
	case "help":
		return h.handleHelp(message.Chat.ID)
	case "report":
		return sendReport(ctx, h.api, h.deps, message.Chat.ID, user)
	case "profile":
		if args := message.CommandArguments(); args != "" {
			return saveProfile(ctx, h.api, h.deps, h.stateManager, message.Chat.ID, user, args)
		}
		return menus.SendProfile(h.api, message.Chat.ID, user.Profile)
	case "food":
		if args := message.CommandArguments(); args != "" {
			return logFood(ctx, h.api, h.deps, h.stateManager, message.Chat.ID, user, args)
		}
		return promptFood(h.api, h.stateManager, message.Chat.ID, user)
	case "exercise":
		if args := message.CommandArguments(); args != "" {
			return logExercise(ctx, h.api, h.deps, h.stateManager, message.Chat.ID, user, args)
		}
		return promptExercise(h.api, h.stateManager, message.Chat.ID, user)
	default:
		return h.handleUnknownCommand(message.Chat.ID)
	}
}

// handleHelp handles the /help command
func (h *CommandHandler) handleHelp(chatID int64) error {
	kb := keyboards.BackToMenu()
	return menus.SendText(h.api, chatID, menus.HelpText, &kb)
}

// handleUnknownCommand handles unknown commands
func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Unknown command. Use /help to see the available commands.")
	_, err := h.api.Send(msg)
	return err
}
