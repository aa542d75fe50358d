package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"georeview/internal/integration"
	"georeview/internal/models"
	"georeview/internal/repository"
	"georeview/pkg/logger"
)

const (
	myID  = "me-111"
	oppID = "opp-222"
)

func testKey(n int) string {
	return fmt.Sprintf("AIza%035d", n)
}

func sampleMatch() models.MatchRecord {
	return models.MatchRecord{
		ID: "duel-abc",
		Options: models.GameOptions{
			Mode: "StandardDuels",
			Map:  models.MapInfo{Name: "A Balanced World"},
		},
		Teams: []models.Team{
			{ID: "red", Players: []models.Player{{
				ID: oppID,
				Guesses: []models.Guess{
					{RoundNumber: 1, Distance: 1200.5, Score: 4100},
				},
			}}},
			{ID: "blue", Players: []models.Player{{
				ID: myID,
				Guesses: []models.Guess{
					{RoundNumber: 1, Distance: 350, Score: 4800},
					{RoundNumber: 2, Distance: 90000, Score: 2200},
				},
			}}},
		},
		Rounds: []models.RoundRecord{
			{RoundNumber: 1, Multiplier: 1, Panorama: models.Panorama{PanoID: "4142", Lat: 45.1, Lng: 7.6, CountryCode: "it", Heading: 90, Pitch: 2}},
			{RoundNumber: 2, Multiplier: 1.5, Panorama: models.Panorama{PanoID: "78797a", Lat: -34.6, Lng: -58.4, CountryCode: "ar", Heading: 300}},
		},
	}
}

func reviewFor(round int) models.RoundReview {
	return models.RoundReview{
		Round:               round,
		ActualRegion:        fmt.Sprintf("Region %d", round),
		MyGuessRegion:       "Po Valley",
		OpponentGuessRegion: "The Pampas",
		GeneralReview:       "Solid round.",
		LocationReview:      "Yellow center lines and white bollards.",
		Tips:                []models.Tip{{Title: "Bollards", Body: "Look at the bollard caps."}},
	}
}

// reportJSON answers rounds n..1, out of order on purpose.
func reportJSON(n int) string {
	rounds := make([]models.RoundReview, 0, n)
	for r := n; r >= 1; r-- {
		rounds = append(rounds, reviewFor(r))
	}
	data, _ := json.Marshal(rounds)
	return string(data)
}

type fakeFetcher struct {
	mu       sync.Mutex
	requests []integration.ViewRequest
	missing  []string
}

func (f *fakeFetcher) FetchViews(_ context.Context, req integration.ViewRequest) integration.ViewSet {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	views := integration.ViewsFor(req.Narrow, req.Heading, req.Pitch)
	var set integration.ViewSet
	for _, v := range views {
		if contains(f.missing, v.Name) {
			set.Missing = append(set.Missing, v.Name)
			continue
		}
		set.Images = append(set.Images, models.Image{View: v.Name, MIMEType: models.ImageMIMEType, Data: []byte(req.PanoID + "/" + v.Name)})
	}
	return set
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type response struct {
	text string
	err  error
}

// scriptedDispatcher answers per credential. When gate is set every call
// blocks until it is closed.
type scriptedDispatcher struct {
	mu        sync.Mutex
	responses map[string]response
	used      []string
	started   chan struct{}
	gate      chan struct{}
}

func (d *scriptedDispatcher) Generate(ctx context.Context, credential string, _ models.PromptPayload) (string, error) {
	d.mu.Lock()
	d.used = append(d.used, credential)
	resp, ok := d.responses[credential]
	d.mu.Unlock()

	if d.started != nil {
		select {
		case d.started <- struct{}{}:
		default:
		}
	}
	if d.gate != nil {
		select {
		case <-d.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if !ok {
		return "", fmt.Errorf("%w: unknown credential", models.ErrTransport)
	}
	return resp.text, resp.err
}

func (d *scriptedDispatcher) calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.used...)
}

type fakeMatchSource struct {
	match     models.MatchRecord
	currentID string
	gets      int
}

func (s *fakeMatchSource) GetDuel(_ context.Context, matchID string) (models.MatchRecord, error) {
	s.gets++
	if matchID != s.match.ID {
		return models.MatchRecord{}, models.ErrMatchNotFound
	}
	return s.match, nil
}

func (s *fakeMatchSource) CurrentUserID(context.Context) (string, error) {
	return s.currentID, nil
}

type harness struct {
	store      *repository.MemoryStore
	fetcher    *fakeFetcher
	dispatcher *scriptedDispatcher
	reviews    *ReviewService
}

func newHarness(responses map[string]response) *harness {
	store := repository.NewMemoryStore()
	fetcher := &fakeFetcher{}
	dispatcher := &scriptedDispatcher{responses: responses}
	reviews := NewReviewService(
		NewCredentialStore(store),
		NewReviewCache(store),
		NewPromptBuilder(fetcher, logger.Nop{}),
		NewReviewClient(dispatcher),
		logger.Nop{},
	)
	return &harness{store: store, fetcher: fetcher, dispatcher: dispatcher, reviews: reviews}
}

func (h *harness) withKeys(keys ...string) *harness {
	if err := NewCredentialStore(h.store).Save(context.Background(), keys); err != nil {
		panic(err)
	}
	return h
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
