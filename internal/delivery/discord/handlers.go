package discord

import (
	"bytes"
	"fmt"
	"strings"

	"georeview/internal/application"
	"georeview/internal/models"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleReview(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	matchID := strings.TrimSpace(stringOption(opts, "match"))
	playerID := strings.TrimSpace(stringOption(opts, "player"))
	round := int(intOption(opts, "round"))

	if !b.deferResponse(s, i, false) {
		return
	}

	result, err := b.services.ReviewMatch(b.ctx, matchID, playerID)
	if err != nil {
		b.logger.Error("review of %s failed: %v", matchID, err)
		b.editResponse(s, i, application.DescribeError(err))
		return
	}

	report := result.Report
	if round > 0 {
		rr, ok := report.Round(round)
		if !ok {
			b.editResponse(s, i, fmt.Sprintf("Round %d is not part of match %s.", round, matchID))
			return
		}
		report = models.ReviewReport{Rounds: []models.RoundReview{rr}}
	}

	chunks := chunkEmbeds(reportEmbeds(report), maxEmbedsPerMessage, maxEmbedChars)
	header := reviewHeader(matchID, len(result.Report.Rounds), result.Cached)

	edit := &discordgo.WebhookEdit{Content: &header}
	if len(chunks) > 0 {
		edit.Embeds = &chunks[0]
	}
	if round == 0 {
		data, err := application.ExportReport(application.MatchID(matchID), result.Report)
		if err != nil {
			b.logger.Warn("failed to export review of %s: %v", matchID, err)
		} else {
			edit.Files = []*discordgo.File{{
				Name:        fmt.Sprintf(exportFilePattern, matchID),
				ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
				Reader:      bytes.NewReader(data),
			}}
		}
	}

	if _, err := s.InteractionResponseEdit(i, edit); err != nil {
		b.logger.Error("failed to send review of %s: %v", matchID, err)
		return
	}

	for _, chunk := range chunks[min(1, len(chunks)):] {
		if _, err := s.FollowupMessageCreate(i, true, &discordgo.WebhookParams{Embeds: chunk}); err != nil {
			b.logger.Error("failed to send review follow-up for %s: %v", matchID, err)
			return
		}
	}
}

func (b *Bot) handleReviewStatus(s *discordgo.Session, i *discordgo.Interaction) {
	st := b.services.Reviews.State()

	color := colorBlue
	if st.Err != nil {
		color = colorRed
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Review status",
		Description: truncate(application.DescribeState(st), descriptionLimit),
		Color:       color,
	}

	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Error("failed to respond to status: %v", err)
	}
}

func (b *Bot) handleSetup(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	keys := application.ParseCredentials(stringOption(opts, "keys"))

	if err := b.services.Credentials.Save(b.ctx, keys); err != nil {
		b.respondMessage(s, i, application.DescribeError(err), true)
		return
	}

	b.logger.Info("credential pool replaced by %s (%d keys)", interactionUserID(i), len(keys))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Saved %d API keys. They are tried in this order:\n", len(keys)))
	for idx, k := range keys {
		sb.WriteString(fmt.Sprintf("`%d.` `%s`\n", idx+1, application.MaskCredential(k)))
	}
	b.respondMessage(s, i, sb.String(), true)
}

func (b *Bot) handleClearKeys(s *discordgo.Session, i *discordgo.Interaction) {
	if err := b.services.Credentials.Clear(b.ctx); err != nil {
		b.respondMessage(s, i, "Failed to remove the API keys: "+err.Error(), true)
		return
	}
	b.logger.Info("credential pool cleared by %s", interactionUserID(i))
	b.respondMessage(s, i, "All API keys removed. Reviews are disabled until /setup runs again.", true)
}

func (b *Bot) handleForget(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	matchID := strings.TrimSpace(stringOption(opts, "match"))

	if err := b.services.Cache.Forget(b.ctx, application.MatchID(matchID)); err != nil {
		b.respondMessage(s, i, "Failed to clear the cached review: "+err.Error(), true)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("Cached review of %s cleared. The next /review generates a new one.", matchID), true)
}

func (b *Bot) handleShare(s *discordgo.Session, i *discordgo.Interaction) {
	opts := optionMap(i.ApplicationCommandData().Options)
	matchID := strings.TrimSpace(stringOption(opts, "match"))

	if !b.deferResponse(s, i, false) {
		return
	}

	url, err := b.services.ShareReview(b.ctx, matchID)
	if err != nil {
		b.logger.Error("sharing review of %s failed: %v", matchID, err)
		b.editResponse(s, i, application.DescribeError(err))
		return
	}
	b.editResponse(s, i, fmt.Sprintf("Review of `%s`: %s", matchID, url))
}
