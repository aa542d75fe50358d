package discord

import (
	"fmt"
	"unicode/utf8"

	"georeview/internal/models"

	"github.com/bwmarrin/discordgo"
)

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int64 {
	if opt, ok := opts[name]; ok {
		return opt.IntValue()
	}
	return 0
}

func reviewHeader(matchID string, rounds int, cached bool) string {
	header := fmt.Sprintf("Review of match `%s` (%d rounds)", matchID, rounds)
	if cached {
		header += " (cached)"
	}
	return header
}

// reportEmbeds renders one embed per round.
func reportEmbeds(report models.ReviewReport) []*discordgo.MessageEmbed {
	embeds := make([]*discordgo.MessageEmbed, 0, len(report.Rounds))
	for _, rr := range report.Rounds {
		embeds = append(embeds, roundEmbed(rr))
	}
	return embeds
}

func roundEmbed(rr models.RoundReview) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Actual", Value: valueOrDefault(truncate(rr.ActualRegion, regionLimit), "-"), Inline: true},
		{Name: "Your guess", Value: valueOrDefault(truncate(rr.MyGuessRegion, regionLimit), "-"), Inline: true},
		{Name: "Opponent", Value: valueOrDefault(truncate(rr.OpponentGuessRegion, regionLimit), "-"), Inline: true},
		{Name: "Location", Value: valueOrDefault(truncate(rr.LocationReview, fieldLimit), "-")},
	}

	tips := rr.Tips
	if len(tips) > maxTipsShown {
		tips = tips[:maxTipsShown]
	}
	for idx, tip := range tips {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  truncate(fmt.Sprintf("Tip %d: %s", idx+1, tip.Title), tipTitleLimit),
			Value: valueOrDefault(truncate(tip.Body, tipBodyLimit), "-"),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       truncate(fmt.Sprintf("Round %d", rr.Round), titleLimit),
		Description: truncate(rr.GeneralReview, descriptionLimit),
		Color:       colorGreen,
		Fields:      fields,
	}
}

// chunkEmbeds groups embeds into messages holding at most maxCount embeds
// and maxChars characters of embed text.
func chunkEmbeds(embeds []*discordgo.MessageEmbed, maxCount, maxChars int) [][]*discordgo.MessageEmbed {
	var (
		chunks  [][]*discordgo.MessageEmbed
		current []*discordgo.MessageEmbed
		size    int
	)
	for _, e := range embeds {
		n := embedLength(e)
		if len(current) > 0 && (len(current) == maxCount || size+n > maxChars) {
			chunks = append(chunks, current)
			current, size = nil, 0
		}
		current = append(current, e)
		size += n
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

func embedLength(e *discordgo.MessageEmbed) int {
	n := utf8.RuneCountInString(e.Title) + utf8.RuneCountInString(e.Description)
	for _, f := range e.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	if e.Footer != nil {
		n += utf8.RuneCountInString(e.Footer.Text)
	}
	return n
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
