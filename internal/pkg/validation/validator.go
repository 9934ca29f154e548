package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mpetrov/edgefinder/internal/pkg/models"
)

// ValidateGameRecord checks a provider-supplied record at the boundary.
// Records failing validation are skipped by the feed provider and rejected
// by the evaluator.
func ValidateGameRecord(game *models.GameRecord) error {
	if game == nil {
		return fmt.Errorf("game cannot be nil")
	}

	if game.Sport == "" {
		return fmt.Errorf("sport cannot be empty")
	}

	if strings.TrimSpace(game.Participants) == "" {
		return fmt.Errorf("participants cannot be empty")
	}

	if game.ModelWinProbability < 0 || game.ModelWinProbability > 100 {
		return fmt.Errorf("model win probability out of range [0,100]: %d", game.ModelWinProbability)
	}

	if _, err := DecimalOddsFromMarket(game.MarketOdds); err != nil {
		return err
	}

	if game.StartTime == "" && game.StartAt.IsZero() {
		return fmt.Errorf("start time cannot be empty")
	}

	return nil
}

// DecimalOddsFromMarket extracts the decimal price from a market odds label
// like "Arsenal 1.16". The price is the last whitespace-separated field.
func DecimalOddsFromMarket(marketOdds string) (float64, error) {
	fields := strings.Fields(marketOdds)
	if len(fields) < 2 {
		return 0, fmt.Errorf("market odds must name a side and a price: %q", marketOdds)
	}

	price, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable decimal odds in %q: %w", marketOdds, err)
	}

	if price <= 1.0 {
		return 0, fmt.Errorf("decimal odds must be greater than 1.0, got %v", price)
	}

	return price, nil
}
