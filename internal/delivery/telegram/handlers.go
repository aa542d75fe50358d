package telegram

import (
	"context"
	"fmt"
	"strings"

	"georeview/internal/application"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := strings.Fields(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		b.sendMessage(chatID, helpText)
	case "review":
		b.handleReview(ctx, chatID, args)
	case "status":
		b.sendMessage(chatID, application.DescribeState(b.services.Reviews.State()))
	case "share":
		b.handleShare(ctx, chatID, args)
	case "setup":
		if !b.isAdmin(msg.From) {
			b.sendMessage(chatID, "You are not allowed to do that.")
			return
		}
		b.handleSetup(ctx, msg, args)
	case "clearkeys":
		if !b.isAdmin(msg.From) {
			b.sendMessage(chatID, "You are not allowed to do that.")
			return
		}
		b.handleClearKeys(ctx, msg)
	case "forget":
		if !b.isAdmin(msg.From) {
			b.sendMessage(chatID, "You are not allowed to do that.")
			return
		}
		b.handleForget(ctx, chatID, args)
	default:
		b.sendMessage(chatID, "Unknown command.\n\n"+helpText)
	}
}

func (b *Bot) handleReview(ctx context.Context, chatID int64, args []string) {
	if len(args) == 0 {
		b.sendMessage(chatID, "Usage: /review <matchId> [playerId]")
		return
	}
	matchID := args[0]
	playerID := ""
	if len(args) > 1 {
		playerID = args[1]
	}

	b.sendMessage(chatID, fmt.Sprintf("Reviewing %s, this can take a few minutes...", matchID))
	b.sendTyping(chatID)

	result, err := b.services.ReviewMatch(ctx, matchID, playerID)
	if err != nil {
		b.logger.Error("review of %s failed: %v", matchID, err)
		b.sendMessage(chatID, application.DescribeError(err))
		return
	}

	for _, rr := range result.Report.Rounds {
		b.sendMessage(chatID, formatRound(rr))
	}

	data, err := application.ExportReport(application.MatchID(matchID), result.Report)
	if err != nil {
		b.logger.Warn("failed to export review of %s: %v", matchID, err)
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: fmt.Sprintf(exportFilePattern, matchID), Bytes: data})
	if _, err := b.bot.Send(doc); err != nil {
		b.logger.Error("failed to send export of %s: %v", matchID, err)
	}
}

func (b *Bot) handleSetup(ctx context.Context, msg *tgbotapi.Message, args []string) {
	keys := application.ParseCredentials(strings.Join(args, ","))
	if err := b.services.Credentials.Save(ctx, keys); err != nil {
		b.sendMessage(msg.Chat.ID, application.DescribeError(err))
		return
	}

	// keys should not stay in the chat history
	if _, err := b.bot.Request(tgbotapi.NewDeleteMessage(msg.Chat.ID, msg.MessageID)); err != nil {
		b.logger.Warn("failed to delete setup message: %v", err)
	}

	b.logger.Info("credential pool replaced by telegram user %d (%d keys)", msg.From.ID, len(keys))
	b.sendMessage(msg.Chat.ID, fmt.Sprintf("Saved %d API keys.", len(keys)))
}

func (b *Bot) handleClearKeys(ctx context.Context, msg *tgbotapi.Message) {
	if err := b.services.Credentials.Clear(ctx); err != nil {
		b.sendMessage(msg.Chat.ID, "Failed to remove the API keys: "+err.Error())
		return
	}
	b.logger.Info("credential pool cleared by telegram user %d", msg.From.ID)
	b.sendMessage(msg.Chat.ID, "All API keys removed. Reviews are disabled until /setup runs again.")
}

func (b *Bot) handleForget(ctx context.Context, chatID int64, args []string) {
	if len(args) == 0 {
		b.sendMessage(chatID, "Usage: /forget <matchId>")
		return
	}
	if err := b.services.Cache.Forget(ctx, application.MatchID(args[0])); err != nil {
		b.sendMessage(chatID, "Failed to clear the cached review: "+err.Error())
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Cached review of %s cleared.", args[0]))
}

func (b *Bot) handleShare(ctx context.Context, chatID int64, args []string) {
	if len(args) == 0 {
		b.sendMessage(chatID, "Usage: /share <matchId>")
		return
	}
	url, err := b.services.ShareReview(ctx, args[0])
	if err != nil {
		b.logger.Error("sharing review of %s failed: %v", args[0], err)
		b.sendMessage(chatID, application.DescribeError(err))
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Review of %s: %s", args[0], url))
}
