package application

import (
	"context"
	"errors"
	"testing"

	"georeview/internal/models"
	"georeview/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateStopsAtFirstSuccess(t *testing.T) {
	keys := []string{testKey(1), testKey(2), testKey(3)}
	var tried []string

	report, attempts, err := NewCredentialRotator(keys, logger.Nop{}).Rotate(context.Background(),
		func(_ context.Context, credential string) (models.ReviewReport, error) {
			tried = append(tried, credential)
			if credential == testKey(1) {
				return models.ReviewReport{}, models.ErrRateLimited
			}
			return models.ReviewReport{Rounds: []models.RoundReview{reviewFor(1)}}, nil
		})

	require.NoError(t, err)
	assert.Len(t, report.Rounds, 1)
	assert.Equal(t, []string{testKey(1), testKey(2)}, tried)
	require.Len(t, attempts, 2)
	assert.Equal(t, OutcomeRateLimited, attempts[0].Outcome)
	assert.Equal(t, Attempt{Slot: 2, Outcome: OutcomeSuccess}, attempts[1])
}

func TestRotateExhausted(t *testing.T) {
	keys := []string{testKey(1), testKey(2)}
	lastErr := errors.New("boom")

	_, attempts, err := NewCredentialRotator(keys, logger.Nop{}).Rotate(context.Background(),
		func(_ context.Context, credential string) (models.ReviewReport, error) {
			if credential == testKey(1) {
				return models.ReviewReport{}, models.ErrRateLimited
			}
			return models.ReviewReport{}, lastErr
		})

	assert.ErrorIs(t, err, models.ErrGenerationExhausted)
	assert.NotErrorIs(t, err, lastErr)
	assert.Contains(t, err.Error(), "2 credentials tried")
	require.Len(t, attempts, 2)
	assert.Equal(t, OutcomeError, attempts[1].Outcome)
}

func TestRotateEmptyPool(t *testing.T) {
	called := false
	_, _, err := NewCredentialRotator(nil, logger.Nop{}).Rotate(context.Background(),
		func(context.Context, string) (models.ReviewReport, error) {
			called = true
			return models.ReviewReport{}, nil
		})

	assert.ErrorIs(t, err, models.ErrConfigurationMissing)
	assert.False(t, called)
}

func TestRotateStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, attempts, err := NewCredentialRotator([]string{testKey(1), testKey(2)}, logger.Nop{}).Rotate(ctx,
		func(context.Context, string) (models.ReviewReport, error) {
			calls++
			cancel()
			return models.ReviewReport{}, models.ErrTransport
		})

	assert.ErrorIs(t, err, models.ErrGenerationExhausted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
	assert.Len(t, attempts, 1)
}
