package engine

import (
	"fmt"

	"github.com/mpetrov/edgefinder/internal/pkg/models"
	"github.com/mpetrov/edgefinder/internal/pkg/validation"
)

// Rationale strings shown on cards, one per recommendation class.
const (
	rationalePlay    = "Model sees higher win probability than market."
	rationalePass    = "Model and market disagree."
	rationaleNeutral = "Edge under threshold."
)

// Evaluate turns a game record into an evaluated game. The edge is the model
// win probability minus the market-implied probability (100/decimal odds);
// positive edge means the model rates the side higher than the market does.
// Pure: the same record and threshold always produce the same result.
func Evaluate(game models.GameRecord, minEdgePercent float64) (models.EvaluatedGame, error) {
	if game.ModelWinProbability < 0 || game.ModelWinProbability > 100 {
		return models.EvaluatedGame{}, models.NewValidationError(
			fmt.Sprintf("model win probability out of range [0,100]: %d", game.ModelWinProbability))
	}

	decimalOdds, err := validation.DecimalOddsFromMarket(game.MarketOdds)
	if err != nil {
		return models.EvaluatedGame{}, models.NewValidationError(err.Error())
	}

	marketImplied := 100.0 / decimalOdds
	edge := float64(game.ModelWinProbability) - marketImplied

	recommendation, rationale := classify(edge, minEdgePercent)

	return models.EvaluatedGame{
		GameRecord:     game,
		EdgePercent:    edge,
		Recommendation: recommendation,
		Rationale:      rationale,
	}, nil
}

// classify maps an edge to a recommendation: at or above the threshold PLAY,
// at or below its negation PASS, NEUTRAL in between. The threshold shapes the
// label only; it never hides a game from the result set.
func classify(edgePercent, minEdgePercent float64) (models.Recommendation, string) {
	switch {
	case edgePercent >= minEdgePercent:
		return models.RecommendationPlay, rationalePlay
	case edgePercent <= -minEdgePercent:
		return models.RecommendationPass, rationalePass
	default:
		return models.RecommendationNeutral, rationaleNeutral
	}
}
