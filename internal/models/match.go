package models

// NarrowFieldMode is the competitive mode tag for no-move-no-pan-no-zoom duels.
const NarrowFieldMode = "NmpzDuels"

// MatchRecord mirrors the duel document exposed by the game server.
type MatchRecord struct {
	ID      string        `json:"gameId"`
	Teams   []Team        `json:"teams"`
	Rounds  []RoundRecord `json:"rounds"`
	Options GameOptions   `json:"options"`
}

type GameOptions struct {
	Mode string  `json:"competitiveGameMode"`
	Map  MapInfo `json:"map"`
}

type MapInfo struct {
	Name string `json:"name"`
}

type Team struct {
	ID      string   `json:"id"`
	Players []Player `json:"players"`
}

type Player struct {
	ID      string  `json:"playerId"`
	Guesses []Guess `json:"guesses"`
}

type Guess struct {
	RoundNumber int     `json:"roundNumber"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Distance    float64 `json:"distance"`
	Score       int     `json:"score"`
}

type RoundRecord struct {
	RoundNumber int      `json:"roundNumber"`
	Multiplier  float64  `json:"multiplier"`
	Panorama    Panorama `json:"panorama"`
}

// Panorama.PanoID is hex encoded, two digits per ASCII character.
type Panorama struct {
	PanoID      string  `json:"panoId"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	CountryCode string  `json:"countryCode"`
	Heading     float64 `json:"heading"`
	Pitch       float64 `json:"pitch"`
}

// IsNarrowField reports whether the match restricts the panorama view.
func (m MatchRecord) IsNarrowField() bool {
	return m.Options.Mode == NarrowFieldMode
}

// GuessFor returns the player's guess for a round, if any.
func (p Player) GuessFor(round int) (Guess, bool) {
	for _, g := range p.Guesses {
		if g.RoundNumber == round {
			return g, true
		}
	}
	return Guess{}, false
}
