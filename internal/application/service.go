package application

import (
	"context"
	"fmt"

	"georeview/internal/models"
	"georeview/internal/repository"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// MatchSource loads finished matches and identifies the account they are
// fetched with.
type MatchSource interface {
	GetDuel(ctx context.Context, matchID string) (models.MatchRecord, error)
	CurrentUserID(ctx context.Context) (string, error)
}

type Service struct {
	Reviews     *ReviewService
	Credentials *CredentialStore
	Cache       *ReviewCache
	// Sheets is nil when sharing is not configured.
	Sheets *SheetPublisher

	matches         MatchSource
	defaultPlayerID string
	logger          Logger
}

func NewService(repos *repository.Repository, matches MatchSource, images ImageFetcher, dispatcher Dispatcher, defaultPlayerID string, logger Logger) *Service {
	credentials := NewCredentialStore(repos.Store)
	cache := NewReviewCache(repos.Store)
	return &Service{
		Reviews:         NewReviewService(credentials, cache, NewPromptBuilder(images, logger), NewReviewClient(dispatcher), logger),
		Credentials:     credentials,
		Cache:           cache,
		matches:         matches,
		defaultPlayerID: defaultPlayerID,
		logger:          logger,
	}
}

// ReviewMatch resolves the point of view, loads the match and returns its
// review. A cached review is returned without contacting any upstream.
func (s *Service) ReviewMatch(ctx context.Context, matchID, playerID string) (GenerationResult, error) {
	if matchID == "" {
		return GenerationResult{}, fmt.Errorf("%w: match id is required", models.ErrDataIntegrity)
	}

	if entry, found, err := s.Reviews.Lookup(ctx, MatchID(matchID)); err != nil {
		return GenerationResult{}, err
	} else if found {
		return cachedResult(entry), nil
	}

	if s.Reviews.Busy() {
		return GenerationResult{}, models.ErrGenerationInProgress
	}

	match, err := s.matches.GetDuel(ctx, matchID)
	if err != nil {
		return GenerationResult{}, err
	}

	userID, err := s.resolvePlayer(ctx, playerID)
	if err != nil {
		return GenerationResult{}, err
	}

	return s.Reviews.Generate(ctx, match, userID)
}

// resolvePlayer picks the explicit id, then the configured one, then the
// account behind the session cookie.
func (s *Service) resolvePlayer(ctx context.Context, playerID string) (string, error) {
	if playerID != "" {
		return playerID, nil
	}
	if s.defaultPlayerID != "" {
		return s.defaultPlayerID, nil
	}
	id, err := s.matches.CurrentUserID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve player: %w", err)
	}
	return id, nil
}

// ShareReview publishes the cached review of a match and returns its link.
func (s *Service) ShareReview(ctx context.Context, matchID string) (string, error) {
	entry, found, err := s.Reviews.Lookup(ctx, MatchID(matchID))
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotReviewed
	}
	return s.Sheets.Publish(ctx, MatchID(matchID), entry.Report)
}
