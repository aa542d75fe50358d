package telegram

import (
	"context"
	"fmt"

	"georeview/internal/application"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	bot      *tgbotapi.BotAPI
	services *application.Service
	logger   application.Logger
	adminIDs map[int64]struct{}
}

func NewBot(token string, adminIDs []int64, services *application.Service, logger application.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	admins := make(map[int64]struct{})
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	logger.Info("Telegram bot authorized on account %s", bot.Self.UserName)

	return &Bot{
		bot:      bot,
		services: services,
		logger:   logger,
		adminIDs: admins,
	}, nil
}

func (b *Bot) Init() error {
	_, err := b.bot.Request(tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "review", Description: "AI review of a duel: /review <matchId> [playerId]"},
		tgbotapi.BotCommand{Command: "status", Description: "State of the current or last review"},
		tgbotapi.BotCommand{Command: "share", Description: "Publish a reviewed match as a Google Sheet"},
		tgbotapi.BotCommand{Command: "setup", Description: "Set Gemini API keys (admins)"},
		tgbotapi.BotCommand{Command: "clearkeys", Description: "Remove all Gemini API keys (admins)"},
		tgbotapi.BotCommand{Command: "forget", Description: "Drop a cached review (admins)"},
	))
	if err != nil {
		b.logger.Warn("failed to register telegram commands: %v", err)
	}
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			// reviews take minutes; keep polling so /status stays responsive
			go b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) Stop() {
	b.bot.StopReceivingUpdates()
}
