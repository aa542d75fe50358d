package models

import "errors"

var (
	// ErrConfigurationMissing means no API credentials are stored. The
	// pipeline does not start and the caller has to run setup.
	ErrConfigurationMissing = errors.New("setup required: no api keys configured")

	// ErrDataIntegrity means the match record lacks the structure the
	// summarizer needs. It is not retried.
	ErrDataIntegrity = errors.New("match data integrity error")

	ErrMatchNotFound = errors.New("match not found")

	// ErrImageFetch is per view and never leaves the image fetcher.
	ErrImageFetch = errors.New("image fetch failed")

	// ErrRateLimited marks a credential that is currently throttled.
	ErrRateLimited = errors.New("rate limited")

	ErrTransport = errors.New("model transport error")

	// ErrResponseValidation means the model answered with something that
	// does not parse into a complete report.
	ErrResponseValidation = errors.New("response validation failed")

	// ErrGenerationExhausted means every credential failed.
	ErrGenerationExhausted = errors.New("generation failed")

	// ErrGenerationInProgress is returned to callers that arrive while
	// another generation is running. No result yet.
	ErrGenerationInProgress = errors.New("generation already in progress")

	ErrInvalidCredentials = errors.New("invalid api keys")
)
