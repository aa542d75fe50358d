package application

import (
	"context"

	"georeview/internal/models"
)

// Dispatcher sends a prompt to the model with one credential and returns
// the raw response text.
type Dispatcher interface {
	Generate(ctx context.Context, credential string, payload models.PromptPayload) (string, error)
}

// ReviewClient performs one request-and-parse. A response that fails
// validation counts as a failed attempt like any transport error.
type ReviewClient struct {
	dispatcher Dispatcher
}

func NewReviewClient(dispatcher Dispatcher) *ReviewClient {
	return &ReviewClient{dispatcher: dispatcher}
}

func (c *ReviewClient) Review(ctx context.Context, credential string, payload models.PromptPayload, roundCount int) (models.ReviewReport, error) {
	text, err := c.dispatcher.Generate(ctx, credential, payload)
	if err != nil {
		return models.ReviewReport{}, err
	}
	return ParseReport(text, roundCount)
}
