package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/handlers"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/menus"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/state"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
)

// Bot represents the Telegram bot
type Bot struct {
	api           *tgbotapi.BotAPI
	updateHandler *handlers.UpdateHandler
}

// NewBot creates a new bot instance
func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Infof("Bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:           api,
		updateHandler: handlers.NewUpdateHandler(api, deps, stateManager),
	}, nil
}

// Notify sends a Markdown message to a chat outside of any update
func (b *Bot) Notify(chatID int64, text string) error {
	return menus.SendText(b.api, chatID, text, nil)
}

// Start begins listening for updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.updateHandler.Handle(ctx, update); err != nil {
				logger.Error("Error handling update", "error", err, "update_id", update.UpdateID)
			}
		}
	}
}
