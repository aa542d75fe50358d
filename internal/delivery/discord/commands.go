package discord

import "github.com/bwmarrin/discordgo"

const (
	commandReview       = "review"
	commandReviewStatus = "review_status"
	commandSetup        = "setup"
	commandForget       = "forget"
	commandShare        = "share"
	commandClearKeys    = "clear_keys"
)

func (b *Bot) addCommands(commands ...*discordgo.ApplicationCommand) {
	b.commands = append(b.commands, commands...)
}

func (b *Bot) newReviewCommand() *discordgo.ApplicationCommand {
	minRound := 1.0
	return &discordgo.ApplicationCommand{
		Name:        commandReview,
		Description: "AI review of a finished duel",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "match", Description: "Duel id", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "player", Description: "GeoGuessr player id to review for", Required: false},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "round", Description: "Only show this round", Required: false, MinValue: &minRound},
		},
	}
}

func (b *Bot) newReviewStatusCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        commandReviewStatus,
		Description: "Show the state of the current or last review",
	}
}

func (b *Bot) newSetupCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        commandSetup,
		Description: "Set the Gemini API keys (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "keys", Description: "Comma separated API keys, tried in order", Required: true},
		},
	}
}

func (b *Bot) newClearKeysCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        commandClearKeys,
		Description: "Remove all Gemini API keys (admins only)",
	}
}

func (b *Bot) newForgetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        commandForget,
		Description: "Drop a cached review so it is generated again (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "match", Description: "Duel id", Required: true},
		},
	}
}

func (b *Bot) newShareCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        commandShare,
		Description: "Publish a reviewed match as a public Google Sheet",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "match", Description: "Duel id", Required: true},
		},
	}
}
