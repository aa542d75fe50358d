package application

import (
	"context"
	"testing"

	"georeview/internal/ai"
	"georeview/internal/integration"
	"georeview/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOrdersMarkersAndImages(t *testing.T) {
	match := sampleMatch()
	summaries, err := Summarize(match, myID)
	require.NoError(t, err)

	fetcher := &fakeFetcher{}
	payload, err := NewPromptBuilder(fetcher, logger.Nop{}).Build(context.Background(), match, summaries)
	require.NoError(t, err)

	// instructions + 2 × (marker + 6 views)
	require.Len(t, payload.Parts, 1+2*7)
	assert.Contains(t, payload.Parts[0].Text, `"A Balanced World"`)
	assert.Contains(t, payload.Parts[0].Text, `"panoId":"AB"`)

	assert.Equal(t, ai.RoundMarker(1), payload.Parts[1].Text)
	for i := 2; i < 8; i++ {
		require.NotNil(t, payload.Parts[i].Image)
		assert.Contains(t, string(payload.Parts[i].Image.Data), "AB/")
	}
	assert.Equal(t, ai.RoundMarker(2), payload.Parts[8].Text)
	assert.Equal(t, "xyz/"+integration.ViewFront, string(payload.Parts[9].Image.Data))
	assert.Equal(t, 12, payload.ImageCount())
}

func TestBuildNarrowFieldToleratesMissingViews(t *testing.T) {
	match := sampleMatch()
	match.Options.Mode = "NmpzDuels"
	summaries, err := Summarize(match, myID)
	require.NoError(t, err)

	fetcher := &fakeFetcher{missing: []string{integration.ViewLeft}}
	payload, err := NewPromptBuilder(fetcher, logger.Nop{}).Build(context.Background(), match, summaries)
	require.NoError(t, err)

	assert.Equal(t, 2, payload.ImageCount())
	assert.Contains(t, payload.Parts[0].Text, ai.ImageDescription(true))
	for _, req := range fetcher.requests {
		assert.True(t, req.Narrow)
	}
	assert.Equal(t, ai.RoundMarker(1), payload.Parts[1].Text)
	assert.Equal(t, integration.ViewRight, payload.Parts[2].Image.View)
	assert.Equal(t, ai.RoundMarker(2), payload.Parts[3].Text)
}
