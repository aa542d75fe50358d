package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"georeview/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	maxMessageLength  = 4096
	exportFilePattern = "review_%s.xlsx"

	helpText = "Commands:\n" +
		"/review <matchId> [playerId] - AI review of a finished duel\n" +
		"/status - State of the current or last review\n" +
		"/share <matchId> - Publish a reviewed match as a Google Sheet\n" +
		"/setup <key1,key2,...> - Set Gemini API keys (admins)\n" +
		"/clearkeys - Remove all Gemini API keys (admins)\n" +
		"/forget <matchId> - Drop a cached review (admins)"
)

func (b *Bot) isAdmin(user *tgbotapi.User) bool {
	if user == nil {
		return false
	}
	_, ok := b.adminIDs[user.ID]
	return ok
}

func (b *Bot) sendMessage(chatID int64, text string) {
	if text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, truncate(text, maxMessageLength))
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := b.bot.Send(msg); err != nil {
		b.logger.Error("failed to send telegram message: %v", err)
	}
}

func (b *Bot) sendTyping(chatID int64) {
	if _, err := b.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.logger.Debug("failed to send chat action: %v", err)
	}
}

func formatRound(rr models.RoundReview) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Round %d\n\n", rr.Round))
	sb.WriteString(fmt.Sprintf("Actual: %s\nYour guess: %s\nOpponent: %s\n\n", rr.ActualRegion, rr.MyGuessRegion, rr.OpponentGuessRegion))
	sb.WriteString(rr.GeneralReview + "\n\n")
	sb.WriteString(rr.LocationReview + "\n")
	if len(rr.Tips) > 0 {
		sb.WriteString("\nTips:\n")
		for i, tip := range rr.Tips {
			sb.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, tip.Title, tip.Body))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
