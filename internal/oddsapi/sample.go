package oddsapi

import (
	"context"
	"time"

	"github.com/mpetrov/edgefinder/internal/pkg/models"
)

// SampleProvider serves a fixed set of example games for demos and offline
// runs. The window arguments are ignored; the records carry display-only
// start strings.
type SampleProvider struct{}

// NewSampleProvider creates a sample feed.
func NewSampleProvider() *SampleProvider {
	return &SampleProvider{}
}

// FetchUpcomingGames returns the sample games. An API key is still required,
// matching the real feed's contract.
func (p *SampleProvider) FetchUpcomingGames(_ context.Context, apiKey string, _, _ time.Time) ([]models.GameRecord, error) {
	if apiKey == "" {
		return nil, models.ErrAuthentication
	}

	return []models.GameRecord{
		{
			Sport:               "Soccer",
			Participants:        "Arsenal vs Manchester United",
			MarketOdds:          "Arsenal 1.16",
			ModelWinProbability: 68,
			StartTime:           "Oct 02, 2025 — 10:00 AM EDT",
		},
		{
			Sport:               "Soccer",
			Participants:        "Roma vs Napoli",
			MarketOdds:          "Napoli 1.75",
			ModelWinProbability: 51,
			StartTime:           "Oct 02, 2025 — 1:00 PM EDT",
		},
		{
			Sport:               "Table Tennis",
			Participants:        "Kuznetsov vs Petrov",
			MarketOdds:          "Petrov 1.60",
			ModelWinProbability: 65,
			StartTime:           "Oct 02, 2025 — 3:00 PM EDT",
		},
	}, nil
}
