package models

import "encoding/json"

// ReviewReport holds one entry per round, ordered by round number. It
// serializes as a bare JSON array, the shape the model answers with.
type ReviewReport struct {
	Rounds []RoundReview
}

type RoundReview struct {
	Round               int    `json:"round"`
	ActualRegion        string `json:"actualRegion"`
	MyGuessRegion       string `json:"myGuessRegion"`
	OpponentGuessRegion string `json:"opponentGuessRegion"`
	GeneralReview       string `json:"generalReview"`
	LocationReview      string `json:"locationReview"`
	Tips                []Tip  `json:"tips"`
}

type Tip struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Round returns the review for a round number.
func (r ReviewReport) Round(n int) (RoundReview, bool) {
	for _, rr := range r.Rounds {
		if rr.Round == n {
			return rr, true
		}
	}
	return RoundReview{}, false
}

func (r ReviewReport) MarshalJSON() ([]byte, error) {
	rounds := r.Rounds
	if rounds == nil {
		rounds = []RoundReview{}
	}
	return json.Marshal(rounds)
}

func (r *ReviewReport) UnmarshalJSON(data []byte) error {
	var rounds []RoundReview
	if err := json.Unmarshal(data, &rounds); err != nil {
		return err
	}
	r.Rounds = rounds
	return nil
}
