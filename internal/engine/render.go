package engine

import (
	"fmt"
	"strings"

	"github.com/mpetrov/edgefinder/internal/pkg/models"
)

// Severity markers, one per recommendation class.
const (
	markerPlay    = "🟩"
	markerPass    = "🟥"
	markerNeutral = "🟨"
)

// RenderCard formats one evaluated game as a display card. The Text body is
// Markdown, one card per game, suitable for chat surfaces as-is.
func RenderCard(game models.EvaluatedGame) models.Card {
	emoji := sportEmoji(game.Sport)
	edge := fmt.Sprintf("%+.1f%%", game.EdgePercent)
	marker := recommendationMarker(game.Recommendation)

	text := fmt.Sprintf(`### %s %s
📉 **Odds:** %s
🧠 **Model Win %%:** %d%%
📊 **Edge:** %s
🎯 **Recommendation:** %s %s
💡 *Reason:* %s
🕒 **Start:** %s`,
		emoji, game.Participants,
		game.MarketOdds,
		game.ModelWinProbability,
		edge,
		marker, game.Recommendation,
		game.Rationale,
		game.StartTime,
	)

	return models.Card{
		Sport:           game.Sport,
		SportEmoji:      emoji,
		Participants:    game.Participants,
		MarketOdds:      game.MarketOdds,
		ModelWinPercent: game.ModelWinProbability,
		EdgePercent:     edge,
		Recommendation:  game.Recommendation,
		Marker:          marker,
		Rationale:       game.Rationale,
		StartTime:       game.StartTime,
		Text:            text,
	}
}

func recommendationMarker(rec models.Recommendation) string {
	switch rec {
	case models.RecommendationPlay:
		return markerPlay
	case models.RecommendationPass:
		return markerPass
	default:
		return markerNeutral
	}
}

// sportEmoji maps a sport key or label to its emoji. Works for both API keys
// ("soccer_epl") and human labels ("Soccer").
func sportEmoji(sport string) string {
	s := strings.ToLower(sport)
	switch {
	case strings.HasPrefix(s, "americanfootball") || strings.Contains(s, "nfl"):
		return "🏈"
	case strings.HasPrefix(s, "baseball") || strings.Contains(s, "mlb"):
		return "⚾"
	case strings.HasPrefix(s, "basketball") || strings.Contains(s, "nba"):
		return "🏀"
	case strings.HasPrefix(s, "icehockey") || strings.Contains(s, "hockey"):
		return "🏒"
	case strings.HasPrefix(s, "soccer") || strings.Contains(s, "epl"):
		return "⚽"
	case strings.Contains(s, "table") && strings.Contains(s, "tennis"):
		return "🏓"
	default:
		return "🎯"
	}
}
