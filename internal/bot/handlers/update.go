package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/menus"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/state"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	api             menus.Sender
	deps            Dependencies
	stateManager    state.StateManager
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	return &UpdateHandler{
		api:             api,
		deps:            deps,
		stateManager:    stateManager,
		callbackHandler: NewCallbackHandler(api, deps, stateManager),
		commandHandler:  NewCommandHandler(api, deps, stateManager),
		textHandler:     NewTextHandler(api, deps, stateManager),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	var from *tgbotapi.User
	if update.CallbackQuery != nil {
		from = update.CallbackQuery.From
	} else {
		from = update.Message.From
	}
	if from == nil {
		return nil
	}

	ctx, _ = logger.NewRequestContext(ctx)
	log := logger.WithContext(ctx).With("update_id", update.UpdateID, "telegram_id", from.ID)

	user, err := h.deps.UserService.RegisterUser(ctx, from.ID, from.UserName, from.FirstName, from.LastName)
	if err != nil {
		log.Error("Error getting/creating user", "error", err)
		return fmt.Errorf("failed to get/create user: %w", err)
	}

	if update.CallbackQuery != nil {
		log.Debug("Handling callback", "data", update.CallbackQuery.Data)
		return h.callbackHandler.Handle(ctx, update.CallbackQuery, user)
	}

	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message, user)
	}

	if update.Message.Text != "" {
		return h.textHandler.Handle(ctx, update.Message, user)
	}

	// Photos, stickers and the like carry no loggable data.
	kb := keyboards.MainMenu()
	return menus.SendText(h.api, update.Message.Chat.ID, "Please send text, for example `banana 2` or `running 30`.", &kb)
}
