package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"georeview/internal/models"
)

// Outcome is the classified result of one credential attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRateLimited
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRateLimited:
		return "rate_limited"
	default:
		return "error"
	}
}

type Attempt struct {
	// Slot is the 1-based position of the credential in the pool.
	Slot    int
	Outcome Outcome
	Err     error
}

// AttemptFunc performs one full request-and-parse with a credential.
type AttemptFunc func(ctx context.Context, credential string) (models.ReviewReport, error)

// CredentialRotator tries each credential of the pool once, in order,
// stopping at the first success.
type CredentialRotator struct {
	credentials []string
	logger      Logger
}

func NewCredentialRotator(credentials []string, logger Logger) *CredentialRotator {
	return &CredentialRotator{credentials: credentials, logger: logger}
}

func (r *CredentialRotator) Rotate(ctx context.Context, attempt AttemptFunc) (models.ReviewReport, []Attempt, error) {
	if len(r.credentials) == 0 {
		return models.ReviewReport{}, nil, fmt.Errorf("%w: credential pool is empty", models.ErrConfigurationMissing)
	}

	attempts := make([]Attempt, 0, len(r.credentials))
	for i, credential := range r.credentials {
		slot := i + 1
		if err := ctx.Err(); err != nil {
			return models.ReviewReport{}, attempts, fmt.Errorf("%w: %s: %w", models.ErrGenerationExhausted, summarizeAttempts(attempts), err)
		}

		report, err := attempt(ctx, credential)
		if err == nil {
			attempts = append(attempts, Attempt{Slot: slot, Outcome: OutcomeSuccess})
			r.logger.Info("credential %d/%d succeeded", slot, len(r.credentials))
			return report, attempts, nil
		}

		outcome := classifyAttempt(err)
		attempts = append(attempts, Attempt{Slot: slot, Outcome: outcome, Err: err})
		r.logger.Warn("credential %d/%d failed (%s): %v", slot, len(r.credentials), outcome, err)
	}

	return models.ReviewReport{}, attempts, fmt.Errorf("%w: %s", models.ErrGenerationExhausted, summarizeAttempts(attempts))
}

func classifyAttempt(err error) Outcome {
	if errors.Is(err, models.ErrRateLimited) {
		return OutcomeRateLimited
	}
	return OutcomeError
}

func summarizeAttempts(attempts []Attempt) string {
	if len(attempts) == 0 {
		return "no credentials tried"
	}
	parts := make([]string, 0, len(attempts))
	for _, a := range attempts {
		parts = append(parts, fmt.Sprintf("#%d %s", a.Slot, a.Outcome))
	}
	return fmt.Sprintf("%d credentials tried (%s)", len(attempts), strings.Join(parts, ", "))
}
