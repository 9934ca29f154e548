package validation

import (
	"testing"
	"time"

	"github.com/mpetrov/edgefinder/internal/pkg/models"
)

func validGame() models.GameRecord {
	return models.GameRecord{
		Sport:               "Soccer",
		Participants:        "Arsenal vs Manchester United",
		MarketOdds:          "Arsenal 1.16",
		ModelWinProbability: 68,
		StartTime:           "Oct 02, 2025 — 10:00 AM EDT",
	}
}

func TestValidateGameRecord(t *testing.T) {
	game := validGame()
	if err := ValidateGameRecord(&game); err != nil {
		t.Errorf("valid game rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*models.GameRecord)
	}{
		{"nil not covered here", nil},
		{"empty sport", func(g *models.GameRecord) { g.Sport = "" }},
		{"blank participants", func(g *models.GameRecord) { g.Participants = "   " }},
		{"win probability above 100", func(g *models.GameRecord) { g.ModelWinProbability = 101 }},
		{"win probability below 0", func(g *models.GameRecord) { g.ModelWinProbability = -5 }},
		{"odds without price", func(g *models.GameRecord) { g.MarketOdds = "Arsenal" }},
		{"odds price not a number", func(g *models.GameRecord) { g.MarketOdds = "Arsenal x" }},
		{"odds price too low", func(g *models.GameRecord) { g.MarketOdds = "Arsenal 1.00" }},
		{"no start information", func(g *models.GameRecord) { g.StartTime = ""; g.StartAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.mutate == nil {
				if err := ValidateGameRecord(nil); err == nil {
					t.Error("nil game accepted")
				}
				return
			}
			g := validGame()
			tt.mutate(&g)
			if err := ValidateGameRecord(&g); err == nil {
				t.Errorf("invalid game accepted: %+v", g)
			}
		})
	}
}

func TestValidateGameRecord_StructuredStartOnly(t *testing.T) {
	g := validGame()
	g.StartTime = ""
	g.StartAt = time.Date(2025, 10, 2, 14, 0, 0, 0, time.UTC)
	if err := ValidateGameRecord(&g); err != nil {
		t.Errorf("game with structured start rejected: %v", err)
	}
}

func TestDecimalOddsFromMarket(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"Arsenal 1.16", 1.16, false},
		{"Manchester United 5.50", 5.50, false},
		{"Petrov 1.60", 1.60, false},
		{"Arsenal", 0, true},
		{"", 0, true},
		{"Arsenal abc", 0, true},
		{"Arsenal 1.00", 0, true},
		{"Arsenal -2.0", 0, true},
	}

	for _, tt := range tests {
		got, err := DecimalOddsFromMarket(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("DecimalOddsFromMarket(%q) accepted invalid input", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("DecimalOddsFromMarket(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DecimalOddsFromMarket(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
