package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"georeview/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const duelDocument = `{
	"gameId": "duel-1",
	"teams": [
		{"id": "t1", "players": [{"playerId": "me", "guesses": [{"roundNumber": 1, "lat": 1.5, "lng": 2.5, "distance": 1234.5, "score": 4200}]}]},
		{"id": "t2", "players": [{"playerId": "opp", "guesses": []}]}
	],
	"rounds": [
		{"roundNumber": 1, "multiplier": 1, "panorama": {"panoId": "4142", "lat": 10, "lng": 20, "countryCode": "it", "heading": 90, "pitch": 0}}
	],
	"options": {"competitiveGameMode": "NmpzDuels", "map": {"name": "A Community World"}}
}`

func newGeoGuessrServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/duels/duel-1", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authCookieName)
		if err != nil || cookie.Value != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(duelDocument))
	})
	mux.HandleFunc("/api/v3/profiles", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user": {"id": "me"}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestGeoGuessr(server *httptest.Server, cookie string) *GeoGuessrClient {
	return NewGeoGuessrClient(GeoGuessrConfig{
		BaseURL:    server.URL + "/api",
		ProfileURL: server.URL + "/api/v3/profiles",
		Cookie:     cookie,
		RPS:        100,
		Timeout:    5 * time.Second,
	})
}

func TestGetDuelDecodesDocument(t *testing.T) {
	client := newTestGeoGuessr(newGeoGuessrServer(t), "secret")

	match, err := client.GetDuel(context.Background(), "duel-1")
	require.NoError(t, err)

	assert.Equal(t, "duel-1", match.ID)
	assert.True(t, match.IsNarrowField())
	assert.Equal(t, "A Community World", match.Options.Map.Name)
	require.Len(t, match.Teams, 2)
	require.Len(t, match.Rounds, 1)
	assert.Equal(t, "4142", match.Rounds[0].Panorama.PanoID)

	g, ok := match.Teams[0].Players[0].GuessFor(1)
	require.True(t, ok)
	assert.Equal(t, 4200, g.Score)
	assert.Equal(t, 1234.5, g.Distance)
}

func TestGetDuelNotFound(t *testing.T) {
	client := newTestGeoGuessr(newGeoGuessrServer(t), "secret")

	_, err := client.GetDuel(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrMatchNotFound)
}

func TestGetDuelUnauthorized(t *testing.T) {
	client := newTestGeoGuessr(newGeoGuessrServer(t), "wrong")

	_, err := client.GetDuel(context.Background(), "duel-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 401")
}

func TestGetDuelEmptyID(t *testing.T) {
	client := newTestGeoGuessr(newGeoGuessrServer(t), "secret")

	_, err := client.GetDuel(context.Background(), "  ")
	assert.Error(t, err)
}

func TestCurrentUserID(t *testing.T) {
	client := newTestGeoGuessr(newGeoGuessrServer(t), "")

	id, err := client.CurrentUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "me", id)
}
