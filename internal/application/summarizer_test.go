package application

import (
	"encoding/json"
	"testing"

	"georeview/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeProjectsRounds(t *testing.T) {
	summaries, err := Summarize(sampleMatch(), myID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	first := summaries[0]
	assert.Equal(t, 1, first.Round)
	assert.Equal(t, "it", first.Country)
	assert.Equal(t, "AB", first.Location.PanoID)
	assert.Equal(t, 90.0, first.Location.Heading)
	assert.Equal(t, models.GuessOutcome{Guessed: true, Score: 4800, Distance: 350}, first.MyGuess)
	assert.Equal(t, models.GuessOutcome{Guessed: true, Score: 4100, Distance: 1200.5}, first.OppGuess)

	second := summaries[1]
	assert.Equal(t, 2, second.Round)
	assert.Equal(t, 1.5, second.Multiplier)
	assert.Equal(t, "xyz", second.Location.PanoID)
	assert.Equal(t, models.NoGuess, second.OppGuess)
}

func TestSummarizeOpponentPointOfView(t *testing.T) {
	summaries, err := Summarize(sampleMatch(), oppID)
	require.NoError(t, err)

	assert.Equal(t, 4100, summaries[0].MyGuess.Score)
	assert.Equal(t, 4800, summaries[0].OppGuess.Score)
	assert.Equal(t, models.NoGuess, summaries[1].MyGuess)
}

func TestSummarizeSerializesNoGuessLabel(t *testing.T) {
	summaries, err := Summarize(sampleMatch(), myID)
	require.NoError(t, err)

	data, err := json.Marshal(summaries[1])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"oppGuess":"No guess"`)
	assert.Contains(t, string(data), `"myGuess":{"score":2200,"dist":"90000m"}`)
}

func TestSummarizeDataIntegrity(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.MatchRecord)
		userID string
	}{
		{"unknown user", func(*models.MatchRecord) {}, "stranger"},
		{"team without players", func(m *models.MatchRecord) { m.Teams[0].Players = nil }, myID},
		{"single team", func(m *models.MatchRecord) { m.Teams = m.Teams[1:] }, myID},
		{"bad panorama id", func(m *models.MatchRecord) { m.Rounds[1].Panorama.PanoID = "zz" }, myID},
		{"non-ASCII panorama id", func(m *models.MatchRecord) { m.Rounds[0].Panorama.PanoID = "ff00" }, myID},
		{"no rounds", func(m *models.MatchRecord) { m.Rounds = nil }, myID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := sampleMatch()
			tt.mutate(&match)

			_, err := Summarize(match, tt.userID)
			assert.ErrorIs(t, err, models.ErrDataIntegrity)
		})
	}
}

func TestDecodePanoID(t *testing.T) {
	got, err := decodePanoID("4142")
	require.NoError(t, err)
	assert.Equal(t, "AB", got)

	_, err = decodePanoID("414")
	assert.Error(t, err)

	_, err = decodePanoID("")
	assert.Error(t, err)

	for _, encoded := range []string{"ff00", "41c3a9", "0a41"} {
		_, err = decodePanoID(encoded)
		assert.Error(t, err, encoded)
	}
}
