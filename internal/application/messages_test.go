package application

import (
	"fmt"
	"testing"
	"time"

	"georeview/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDescribeError(t *testing.T) {
	wrapped := fmt.Errorf("%w: 2 credentials tried", models.ErrGenerationExhausted)
	assert.Equal(t, "Error generating review. Please check your API keys.", DescribeError(wrapped))
	assert.Contains(t, DescribeError(models.ErrConfigurationMissing), "/setup")
	assert.Contains(t, DescribeError(models.ErrGenerationInProgress), "still generating")
	assert.Contains(t, DescribeError(fmt.Errorf("%w: x", models.ErrDataIntegrity)), "not usable")
}

func TestDescribeState(t *testing.T) {
	assert.Equal(t, "Status: idle", DescribeState(RequestState{}))

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	st := RequestState{
		Phase:     PhaseFailed,
		RunID:     "run-1",
		MatchID:   "m1",
		StartedAt: start,
		UpdatedAt: start.Add(90 * time.Second),
		Attempts:  []Attempt{{Slot: 1, Outcome: OutcomeRateLimited}},
		Err:       models.ErrGenerationExhausted,
	}
	out := DescribeState(st)
	assert.Contains(t, out, "Status: failed")
	assert.Contains(t, out, "Match: m1")
	assert.Contains(t, out, "Took: 1m30s")
	assert.Contains(t, out, "#1 rate_limited")
	assert.Contains(t, out, "check your API keys")
}
