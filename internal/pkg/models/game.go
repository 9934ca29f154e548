package models

import (
	"time"
)

// Recommendation is the three-way verdict for one evaluated game.
type Recommendation string

const (
	RecommendationPlay    Recommendation = "PLAY"
	RecommendationPass    Recommendation = "PASS"
	RecommendationNeutral Recommendation = "NEUTRAL"
)

// GameRecord represents one upcoming event as supplied by the feed provider.
type GameRecord struct {
	Sport        string `json:"sport"`        // sport key, e.g. "soccer_epl"
	Participants string `json:"participants"` // "Arsenal vs Manchester United"

	// MarketOdds is the named side plus its decimal price, e.g. "Arsenal 1.16".
	// The display string is the source of truth; the evaluator parses the
	// trailing price out of it.
	MarketOdds string `json:"market_odds"`

	// ModelWinProbability is the model's win chance for the named side,
	// integer percent in [0, 100].
	ModelWinProbability int `json:"model_win_probability"`

	// StartTime is the human-readable start string shown on cards.
	StartTime string `json:"start_time"`

	// StartAt is the structured start timestamp. Zero when the provider
	// only had a display string.
	StartAt time.Time `json:"start_at,omitempty"`
}

// EvaluatedGame is a GameRecord plus the computed edge and verdict.
// It is derived once per run and never mutated afterwards.
type EvaluatedGame struct {
	GameRecord

	// EdgePercent = model win probability - market-implied probability.
	// Positive means the model favors the side more than the market does.
	EdgePercent    float64        `json:"edge_percent"`
	Recommendation Recommendation `json:"recommendation"`
	Rationale      string         `json:"rationale"`
}

// Card is a rendered EvaluatedGame ready for display.
type Card struct {
	Sport           string         `json:"sport"`
	SportEmoji      string         `json:"sport_emoji"`
	Participants    string         `json:"participants"`
	MarketOdds      string         `json:"market_odds"`
	ModelWinPercent int            `json:"model_win_percent"`
	EdgePercent     string         `json:"edge_percent"` // explicit sign, one decimal, e.g. "+4.1%"
	Recommendation  Recommendation `json:"recommendation"`
	Marker          string         `json:"marker"`
	Rationale       string         `json:"rationale"`
	StartTime       string         `json:"start_time"`

	// Text is the full Markdown card body (one card per game).
	Text string `json:"text"`
}

// RunResult is everything one run produced.
type RunResult struct {
	Cards        []Card    `json:"cards"`
	GamesFetched int       `json:"games_fetched"`
	GamesShown   int       `json:"games_shown"`
	GeneratedAt  time.Time `json:"generated_at"`
}
