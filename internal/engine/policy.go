package engine

import (
	"sort"

	"github.com/mpetrov/edgefinder/internal/pkg/models"
)

// ApplyResultPolicy optionally reorders the evaluated games. With
// sortByModelWinDesc it stable-sorts by model win probability descending and
// truncates to topN; otherwise the input comes back unchanged, in provider
// order. Filtering by recommendation class is deliberately not done here.
func ApplyResultPolicy(games []models.EvaluatedGame, sortByModelWinDesc bool, topN int) []models.EvaluatedGame {
	if !sortByModelWinDesc {
		return games
	}
	if topN <= 0 {
		topN = 10
	}

	sorted := make([]models.EvaluatedGame, len(games))
	copy(sorted, games)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ModelWinProbability > sorted[j].ModelWinProbability
	})

	if len(sorted) > topN {
		sorted = sorted[:topN]
	}
	return sorted
}
