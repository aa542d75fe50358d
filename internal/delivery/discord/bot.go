package discord

import (
	"context"
	"fmt"
	"strings"

	"georeview/internal/application"
	"georeview/pkg/config"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger

	adminIDs map[string]struct{}
	guildID  string
	commands []*discordgo.ApplicationCommand

	ctx context.Context
}

func NewBot(cfg *config.Config, services *application.Service, logger application.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	admins := make(map[string]struct{})
	for _, id := range cfg.AdminUserIDs {
		cleanID := strings.TrimSpace(id)
		if cleanID != "" {
			admins[cleanID] = struct{}{}
		}
	}

	return &Bot{
		session:  s,
		services: services,
		logger:   logger,
		adminIDs: admins,
		guildID:  cfg.DiscordGuildID,
		ctx:      context.Background(),
	}, nil
}

func (b *Bot) Init() error {
	b.session.AddHandler(b.onInteraction)
	b.addCommands(
		b.newReviewCommand(),
		b.newReviewStatusCommand(),
		b.newSetupCommand(),
		b.newClearKeysCommand(),
		b.newForgetCommand(),
		b.newShareCommand(),
	)
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	b.ctx = ctx
	if err := b.session.Open(); err != nil {
		b.logger.Error("failed to open discord session: %v", err)
		return
	}

	b.logger.Info("Discord bot started. Registering slash commands...")

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, b.commands)
	if err != nil {
		b.logger.Error("Failed to register commands: %v", err)
		return
	}
	b.logger.Info("Slash commands registered successfully")
}

func (b *Bot) Stop() {
	if err := b.session.Close(); err != nil {
		b.logger.Warn("failed to close discord session: %v", err)
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case commandReview:
		b.handleReview(s, i.Interaction)
	case commandReviewStatus:
		b.handleReviewStatus(s, i.Interaction)
	case commandShare:
		b.handleShare(s, i.Interaction)
	case commandSetup:
		b.ensureAdmin(s, i.Interaction, b.handleSetup)
	case commandClearKeys:
		b.ensureAdmin(s, i.Interaction, b.handleClearKeys)
	case commandForget:
		b.ensureAdmin(s, i.Interaction, b.handleForget)
	}
}
