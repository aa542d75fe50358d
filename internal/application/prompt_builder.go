package application

import (
	"context"
	"encoding/json"
	"fmt"

	"georeview/internal/ai"
	"georeview/internal/integration"
	"georeview/internal/models"
)

type ImageFetcher interface {
	FetchViews(ctx context.Context, req integration.ViewRequest) integration.ViewSet
}

// PromptBuilder assembles the multimodal request for a whole match: the
// instruction block first, then for each round a marker followed by
// whatever views of that round could be fetched.
type PromptBuilder struct {
	images ImageFetcher
	logger Logger
}

func NewPromptBuilder(images ImageFetcher, logger Logger) *PromptBuilder {
	return &PromptBuilder{images: images, logger: logger}
}

func (b *PromptBuilder) Build(ctx context.Context, match models.MatchRecord, summaries []models.RoundSummary) (models.PromptPayload, error) {
	data, err := json.Marshal(summaries)
	if err != nil {
		return models.PromptPayload{}, fmt.Errorf("failed to serialize round summaries: %w", err)
	}

	narrow := match.IsNarrowField()

	var payload models.PromptPayload
	payload.AddText(ai.ReviewInstructions(ai.InstructionParams{
		RoundCount:  len(summaries),
		Mode:        match.Options.Mode,
		MapName:     match.Options.Map.Name,
		NarrowField: narrow,
		Data:        string(data),
	}))

	for _, s := range summaries {
		if err := ctx.Err(); err != nil {
			return models.PromptPayload{}, err
		}

		payload.AddText(ai.RoundMarker(s.Round))

		set := b.images.FetchViews(ctx, integration.ViewRequest{
			PanoID:  s.Location.PanoID,
			Narrow:  narrow,
			Heading: s.Location.Heading,
			Pitch:   s.Location.Pitch,
		})
		if !set.Complete() {
			b.logger.Warn("round %d of %s: missing views %v", s.Round, match.ID, set.Missing)
		}
		for _, img := range set.Images {
			payload.AddImage(img)
		}
	}

	return payload, nil
}
