package application

import (
	"fmt"

	"georeview/internal/models"
)

// Summarize projects a match into one summary per round, in round order,
// from the point of view of userID. It performs no I/O.
func Summarize(match models.MatchRecord, userID string) ([]models.RoundSummary, error) {
	if len(match.Rounds) == 0 {
		return nil, fmt.Errorf("%w: match %s has no rounds", models.ErrDataIntegrity, match.ID)
	}

	me, opponent, err := resolvePlayers(match, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.RoundSummary, 0, len(match.Rounds))
	for i, r := range match.Rounds {
		round := i + 1

		panoID, err := decodePanoID(r.Panorama.PanoID)
		if err != nil {
			return nil, fmt.Errorf("%w: round %d: %v", models.ErrDataIntegrity, round, err)
		}

		summaries = append(summaries, models.RoundSummary{
			Round:      round,
			Multiplier: r.Multiplier,
			Country:    r.Panorama.CountryCode,
			Location: models.Location{
				PanoID:  panoID,
				Lat:     r.Panorama.Lat,
				Lng:     r.Panorama.Lng,
				Heading: r.Panorama.Heading,
				Pitch:   r.Panorama.Pitch,
			},
			MyGuess:  outcomeFor(me, round),
			OppGuess: outcomeFor(opponent, round),
		})
	}
	return summaries, nil
}

// resolvePlayers finds the user's team (first player id equals userID)
// and the other team, returning each team's first player.
func resolvePlayers(match models.MatchRecord, userID string) (models.Player, models.Player, error) {
	var me, opponent *models.Player
	for i := range match.Teams {
		team := &match.Teams[i]
		if len(team.Players) == 0 {
			return models.Player{}, models.Player{}, fmt.Errorf("%w: team %q has no players", models.ErrDataIntegrity, team.ID)
		}
		first := &team.Players[0]
		switch {
		case first.ID == userID && me == nil:
			me = first
		case first.ID != userID && opponent == nil:
			opponent = first
		}
	}

	if me == nil {
		return models.Player{}, models.Player{}, fmt.Errorf("%w: no team belongs to user %q", models.ErrDataIntegrity, userID)
	}
	if opponent == nil {
		return models.Player{}, models.Player{}, fmt.Errorf("%w: no opposing team", models.ErrDataIntegrity)
	}
	return *me, *opponent, nil
}

func outcomeFor(p models.Player, round int) models.GuessOutcome {
	g, ok := p.GuessFor(round)
	if !ok {
		return models.NoGuess
	}
	return models.GuessedOutcome(g)
}
