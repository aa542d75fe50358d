package application

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"georeview/internal/models"
)

var fenceReplacer = strings.NewReplacer("```json", "", "```JSON", "", "```", "")

// stripCodeFence removes markdown code fence markers the model sometimes
// wraps its JSON in.
func stripCodeFence(text string) string {
	return strings.TrimSpace(fenceReplacer.Replace(text))
}

// ParseReport decodes the model's answer and checks it covers rounds
// 1..roundCount exactly once each. The returned report is sorted by round.
func ParseReport(text string, roundCount int) (models.ReviewReport, error) {
	cleaned := stripCodeFence(text)
	if cleaned == "" {
		return models.ReviewReport{}, fmt.Errorf("%w: empty response", models.ErrResponseValidation)
	}

	var rounds []models.RoundReview
	if err := json.Unmarshal([]byte(cleaned), &rounds); err != nil {
		return models.ReviewReport{}, fmt.Errorf("%w: invalid JSON (%s): %v", models.ErrResponseValidation, truncate(cleaned, 80), err)
	}

	if len(rounds) != roundCount {
		return models.ReviewReport{}, fmt.Errorf("%w: expected %d rounds, got %d", models.ErrResponseValidation, roundCount, len(rounds))
	}

	seen := make(map[int]bool, len(rounds))
	for i := range rounds {
		rr := &rounds[i]
		if rr.Round < 1 || rr.Round > roundCount {
			return models.ReviewReport{}, fmt.Errorf("%w: round %d out of range 1..%d", models.ErrResponseValidation, rr.Round, roundCount)
		}
		if seen[rr.Round] {
			return models.ReviewReport{}, fmt.Errorf("%w: round %d appears twice", models.ErrResponseValidation, rr.Round)
		}
		seen[rr.Round] = true

		normalizeReview(rr)
		if err := validateReview(*rr); err != nil {
			return models.ReviewReport{}, fmt.Errorf("%w: round %d: %v", models.ErrResponseValidation, rr.Round, err)
		}
	}

	sort.Slice(rounds, func(i, j int) bool { return rounds[i].Round < rounds[j].Round })
	return models.ReviewReport{Rounds: rounds}, nil
}

func normalizeReview(rr *models.RoundReview) {
	rr.ActualRegion = strings.TrimSpace(rr.ActualRegion)
	rr.MyGuessRegion = strings.TrimSpace(rr.MyGuessRegion)
	rr.OpponentGuessRegion = strings.TrimSpace(rr.OpponentGuessRegion)
	rr.GeneralReview = strings.TrimSpace(rr.GeneralReview)
	rr.LocationReview = strings.TrimSpace(rr.LocationReview)
	for i := range rr.Tips {
		rr.Tips[i].Title = strings.TrimSpace(rr.Tips[i].Title)
		rr.Tips[i].Body = strings.TrimSpace(rr.Tips[i].Body)
	}
}

func validateReview(rr models.RoundReview) error {
	required := []struct {
		name, value string
	}{
		{"actualRegion", rr.ActualRegion},
		{"myGuessRegion", rr.MyGuessRegion},
		{"opponentGuessRegion", rr.OpponentGuessRegion},
		{"generalReview", rr.GeneralReview},
		{"locationReview", rr.LocationReview},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("missing %s", f.name)
		}
	}

	if len(rr.Tips) == 0 {
		return fmt.Errorf("missing tips")
	}
	for i, tip := range rr.Tips {
		if tip.Title == "" || tip.Body == "" {
			return fmt.Errorf("tip %d is incomplete", i+1)
		}
	}
	return nil
}
