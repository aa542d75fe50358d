package models

import (
	"encoding/json"
	"strconv"
)

// NoGuessLabel is what the model sees for a round a player never guessed.
const NoGuessLabel = "No guess"

// RoundSummary is the model-facing projection of a single round.
type RoundSummary struct {
	Round      int          `json:"round"`
	Multiplier float64      `json:"multiplier"`
	Country    string       `json:"country"`
	Location   Location     `json:"loc"`
	MyGuess    GuessOutcome `json:"myGuess"`
	OppGuess   GuessOutcome `json:"oppGuess"`
}

type Location struct {
	PanoID  string  `json:"panoId"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Heading float64 `json:"heading"`
	Pitch   float64 `json:"pitch"`
}

// GuessOutcome is either a scored guess or the explicit no-guess sentinel.
type GuessOutcome struct {
	Guessed  bool
	Score    int
	Distance float64
}

// NoGuess is the sentinel outcome for a missing guess.
var NoGuess = GuessOutcome{}

func GuessedOutcome(g Guess) GuessOutcome {
	return GuessOutcome{Guessed: true, Score: g.Score, Distance: g.Distance}
}

type guessPayload struct {
	Score int    `json:"score"`
	Dist  string `json:"dist"`
}

func (o GuessOutcome) MarshalJSON() ([]byte, error) {
	if !o.Guessed {
		return json.Marshal(NoGuessLabel)
	}
	return json.Marshal(guessPayload{
		Score: o.Score,
		Dist:  strconv.FormatFloat(o.Distance, 'f', -1, 64) + "m",
	})
}
