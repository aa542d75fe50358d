package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"georeview/internal/models"
)

// Phase is the lifecycle stage of the most recent generation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseCompleted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInFlight:
		return "in_flight"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// RequestState describes the current or last generation.
type RequestState struct {
	Phase     Phase
	RunID     string
	MatchID   MatchID
	StartedAt time.Time
	UpdatedAt time.Time
	Attempts  []Attempt
	Err       error
}

// GenerationResult is a completed review plus how it was obtained. Raw is
// the review exactly as stored in the cache.
type GenerationResult struct {
	Report   models.ReviewReport
	Raw      string
	Cached   bool
	Attempts []Attempt
}

func cachedResult(entry CacheEntry) GenerationResult {
	return GenerationResult{Report: entry.Report, Raw: entry.Raw, Cached: true}
}

// ReviewService runs the whole pipeline for one match at a time. While a
// generation is in flight every other request is refused, whatever its
// match.
type ReviewService struct {
	credentials *CredentialStore
	cache       *ReviewCache
	builder     *PromptBuilder
	client      *ReviewClient
	logger      Logger
	now         func() time.Time

	mu    sync.Mutex
	state RequestState
}

func NewReviewService(credentials *CredentialStore, cache *ReviewCache, builder *PromptBuilder, client *ReviewClient, logger Logger) *ReviewService {
	return &ReviewService{
		credentials: credentials,
		cache:       cache,
		builder:     builder,
		client:      client,
		logger:      logger,
		now:         time.Now,
	}
}

// Lookup returns the cached review for a match without generating one.
// It fails with ErrConfigurationMissing when the pool is empty.
func (s *ReviewService) Lookup(ctx context.Context, id MatchID) (CacheEntry, bool, error) {
	if _, err := s.loadCredentials(ctx); err != nil {
		return CacheEntry{}, false, err
	}
	return s.cache.Get(ctx, id)
}

// Generate returns the review of match from userID's point of view,
// serving it from the cache when present.
func (s *ReviewService) Generate(ctx context.Context, match models.MatchRecord, userID string) (GenerationResult, error) {
	keys, err := s.loadCredentials(ctx)
	if err != nil {
		return GenerationResult{}, err
	}

	id := MatchID(match.ID)
	if id == "" {
		return GenerationResult{}, fmt.Errorf("%w: match has no id", models.ErrDataIntegrity)
	}

	if entry, found, err := s.cache.Get(ctx, id); err != nil {
		return GenerationResult{}, err
	} else if found {
		s.logger.Debug("review cache hit for %s", id)
		return cachedResult(entry), nil
	}

	runID, ok := s.begin(id)
	if !ok {
		return GenerationResult{}, models.ErrGenerationInProgress
	}

	result, err := s.run(ctx, runID, id, match, userID, keys)
	s.finish(runID, result.Attempts, err)
	return result, err
}

// Busy reports whether a generation is in flight.
func (s *ReviewService) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Phase == PhaseInFlight
}

// State returns a snapshot of the current or last generation.
func (s *ReviewService) State() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Attempts = append([]Attempt(nil), s.state.Attempts...)
	return st
}

func (s *ReviewService) loadCredentials(ctx context.Context) ([]string, error) {
	keys, err := s.credentials.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no API keys configured, run /setup", models.ErrConfigurationMissing)
	}
	return keys, nil
}

func (s *ReviewService) begin(id MatchID) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase == PhaseInFlight {
		return "", false
	}
	now := s.now()
	s.state = RequestState{
		Phase:     PhaseInFlight,
		RunID:     uuid.NewString(),
		MatchID:   id,
		StartedAt: now,
		UpdatedAt: now,
	}
	return s.state.RunID, true
}

func (s *ReviewService) finish(runID string, attempts []Attempt, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.RunID != runID {
		return
	}
	s.state.Attempts = attempts
	s.state.UpdatedAt = s.now()
	s.state.Err = err
	if err != nil {
		s.state.Phase = PhaseFailed
		return
	}
	s.state.Phase = PhaseCompleted
}

func (s *ReviewService) run(ctx context.Context, runID string, id MatchID, match models.MatchRecord, userID string, keys []string) (GenerationResult, error) {
	s.logger.Info("[%s] generating review for %s (%d credentials)", runID, id, len(keys))

	// A review may have landed between the first lookup and acquiring the flight.
	if entry, found, err := s.cache.Get(ctx, id); err != nil {
		return GenerationResult{}, err
	} else if found {
		return cachedResult(entry), nil
	}

	summaries, err := Summarize(match, userID)
	if err != nil {
		s.logger.Error("[%s] failed to summarize %s: %v", runID, id, err)
		return GenerationResult{}, err
	}

	payload, err := s.builder.Build(ctx, match, summaries)
	if err != nil {
		return GenerationResult{}, err
	}
	s.logger.Debug("[%s] prompt has %d parts, %d images", runID, len(payload.Parts), payload.ImageCount())

	rotator := NewCredentialRotator(keys, s.logger)
	report, attempts, err := rotator.Rotate(ctx, func(ctx context.Context, credential string) (models.ReviewReport, error) {
		return s.client.Review(ctx, credential, payload, len(summaries))
	})
	if err != nil {
		s.logger.Error("[%s] review of %s failed: %v", runID, id, err)
		return GenerationResult{Attempts: attempts}, err
	}

	entry, added, err := s.cache.Put(ctx, id, report)
	if err != nil {
		s.logger.Error("[%s] failed to cache review of %s: %v", runID, id, err)
		if entry, err = newCacheEntry(report); err != nil {
			entry = CacheEntry{Report: report}
		}
	} else if !added {
		// Another writer got there first; serve the stored entry.
		if cached, found, getErr := s.cache.Get(ctx, id); getErr == nil && found {
			entry = cached
		}
	}

	s.logger.Info("[%s] review of %s ready", runID, id)
	return GenerationResult{Report: entry.Report, Raw: entry.Raw, Attempts: attempts}, nil
}
