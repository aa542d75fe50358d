package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"georeview/internal/models"

	"golang.org/x/time/rate"
)

const (
	authCookieName = "_ncfa"
	maxBodyBytes   = 5 * 1024 * 1024
)

type GeoGuessrConfig struct {
	BaseURL    string        `env:"BASE_URL" envDefault:"https://game-server.geoguessr.com/api"`
	ProfileURL string        `env:"PROFILE_URL" envDefault:"https://www.geoguessr.com/api/v3/profiles"`
	Cookie     string        `env:"COOKIE"`
	PlayerID   string        `env:"PLAYER_ID"`
	RPS        float64       `env:"RPS" envDefault:"2"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// GeoGuessrClient reads duel documents from the game server. It is the
// match data source; the documents are treated as read-only input.
type GeoGuessrClient struct {
	cfg        GeoGuessrConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewGeoGuessrClient(cfg GeoGuessrConfig) *GeoGuessrClient {
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	return &GeoGuessrClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// GetDuel fetches the duel document for a match.
func (c *GeoGuessrClient) GetDuel(ctx context.Context, matchID string) (models.MatchRecord, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return models.MatchRecord{}, fmt.Errorf("empty match id")
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/duels/" + url.PathEscape(matchID)

	var match models.MatchRecord
	if err := c.getJSON(ctx, endpoint, &match); err != nil {
		return models.MatchRecord{}, fmt.Errorf("failed to get duel %s: %w", matchID, err)
	}
	if match.ID == "" {
		match.ID = matchID
	}
	return match, nil
}

// CurrentUserID returns the id of the account the auth cookie belongs to.
func (c *GeoGuessrClient) CurrentUserID(ctx context.Context) (string, error) {
	var profile struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := c.getJSON(ctx, c.cfg.ProfileURL, &profile); err != nil {
		return "", fmt.Errorf("failed to get profile: %w", err)
	}
	if profile.User.ID == "" {
		return "", fmt.Errorf("profile response has no user id")
	}
	return profile.User.ID, nil
}

func (c *GeoGuessrClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Cookie != "" {
		req.AddCookie(&http.Cookie{Name: authCookieName, Value: c.cfg.Cookie})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.ErrMatchNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func snippet(body []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
