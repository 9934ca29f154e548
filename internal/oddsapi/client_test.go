package oddsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mpetrov/edgefinder/internal/pkg/config"
	"github.com/mpetrov/edgefinder/internal/pkg/models"
)

func testConfig(baseURL string) config.OddsAPIConfig {
	return config.OddsAPIConfig{
		BaseURL:    baseURL,
		Timeout:    "5s",
		Regions:    "us",
		Markets:    "h2h",
		OddsFormat: "decimal",
		Bookmaker:  "draftkings",
		Sports:     []string{"soccer_epl"},
		WindowDays: 2,
	}
}

func dkEvent(home, away string, start time.Time, outcomes ...apiOutcome) apiEvent {
	return apiEvent{
		ID:           home + "-" + away,
		SportKey:     "soccer_epl",
		SportTitle:   "EPL",
		CommenceTime: start,
		HomeTeam:     home,
		AwayTeam:     away,
		Bookmakers: []apiBookmaker{
			{Key: "betmgm", Title: "BetMGM", Markets: []apiMarket{{Key: "h2h", Outcomes: outcomes}}},
			{Key: "draftkings", Title: "DraftKings", Markets: []apiMarket{{Key: "h2h", Outcomes: outcomes}}},
		},
	}
}

func TestFetchUpcomingGames(t *testing.T) {
	now := time.Now().UTC()
	windowStart := now.Add(-time.Minute)
	windowEnd := now.Add(48 * time.Hour)

	later := now.Add(30 * time.Hour)
	sooner := now.Add(2 * time.Hour)

	events := []apiEvent{
		// Listed later but returned first: output must be re-sorted.
		dkEvent("Roma", "Napoli", later, apiOutcome{Name: "Napoli", Price: 1.75}),
		dkEvent("Arsenal", "Manchester United", sooner,
			apiOutcome{Name: "Arsenal", Price: 1.16},
			apiOutcome{Name: "Manchester United", Price: 5.50},
			apiOutcome{Name: "", Price: 2.0},      // malformed: no side
			apiOutcome{Name: "Draw", Price: 0.50}, // malformed: price <= 1
		),
		// Outside the window.
		dkEvent("Leeds", "Everton", now.Add(96*time.Hour), apiOutcome{Name: "Leeds", Price: 2.00}),
		// Missing teams.
		{SportKey: "soccer_epl", CommenceTime: sooner, Bookmakers: nil},
	}

	var gotPath string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k, v := range r.URL.Query() {
			gotQuery[k] = v[0]
		}
		_ = json.NewEncoder(w).Encode(events)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), 0.98)
	games, err := client.FetchUpcomingGames(context.Background(), "secret", windowStart, windowEnd)
	if err != nil {
		t.Fatalf("FetchUpcomingGames returned error: %v", err)
	}

	if gotPath != "/v4/sports/soccer_epl/odds" {
		t.Errorf("path = %s", gotPath)
	}
	for k, want := range map[string]string{
		"apiKey":     "secret",
		"regions":    "us",
		"markets":    "h2h",
		"oddsFormat": "decimal",
	} {
		if gotQuery[k] != want {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], want)
		}
	}

	// Arsenal + Manchester United (malformed outcomes skipped), then Napoli.
	if len(games) != 3 {
		t.Fatalf("games = %d, want 3: %+v", len(games), games)
	}

	first := games[0]
	if first.Participants != "Arsenal vs Manchester United" {
		t.Errorf("games not sorted by start time: first is %q", first.Participants)
	}
	if first.MarketOdds != "Arsenal 1.16" {
		t.Errorf("market odds = %q, want %q", first.MarketOdds, "Arsenal 1.16")
	}
	if first.Sport != "EPL" {
		t.Errorf("sport = %q, want EPL", first.Sport)
	}
	// Baseline model: round(100 / (1.16 * 0.98)) = 88.
	if first.ModelWinProbability != 88 {
		t.Errorf("model win = %d, want 88", first.ModelWinProbability)
	}
	if first.StartAt.IsZero() || first.StartTime == "" {
		t.Error("start fields not populated")
	}

	if games[2].Participants != "Roma vs Napoli" {
		t.Errorf("last game = %q, want Roma vs Napoli", games[2].Participants)
	}
}

func TestFetchUpcomingGames_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"401 is authentication", http.StatusUnauthorized, models.ErrAuthentication},
		{"403 is authentication", http.StatusForbidden, models.ErrAuthentication},
		{"429 is quota", http.StatusTooManyRequests, models.ErrQuotaExceeded},
		{"500 is upstream", http.StatusInternalServerError, models.ErrUpstreamUnavailable},
		{"404 is upstream", http.StatusNotFound, models.ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			client := NewClient(testConfig(srv.URL), 0.98)
			_, err := client.FetchUpcomingGames(context.Background(), "k", time.Now(), time.Now().Add(time.Hour))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchUpcomingGames_MissingKeyMakesNoRequest(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), 0.98)
	_, err := client.FetchUpcomingGames(context.Background(), "  ", time.Now(), time.Now().Add(time.Hour))
	if !errors.Is(err, models.ErrAuthentication) {
		t.Errorf("error = %v, want authentication", err)
	}
	if requests != 0 {
		t.Errorf("made %d HTTP requests, want 0", requests)
	}
}

func TestFetchUpcomingGames_BadJSONIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"not a list"}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), 0.98)
	_, err := client.FetchUpcomingGames(context.Background(), "k", time.Now(), time.Now().Add(time.Hour))
	if !errors.Is(err, models.ErrUpstreamUnavailable) {
		t.Errorf("error = %v, want upstream unavailable", err)
	}
}

func TestFetchUpcomingGames_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Timeout = "20ms"

	client := NewClient(cfg, 0.98)
	_, err := client.FetchUpcomingGames(context.Background(), "k", time.Now(), time.Now().Add(time.Hour))
	if !errors.Is(err, models.ErrUpstreamUnavailable) {
		t.Errorf("timeout error = %v, want upstream unavailable", err)
	}
}

func TestModelWinPercent(t *testing.T) {
	client := NewClient(testConfig("http://localhost"), 0.98)

	tests := []struct {
		price float64
		want  int
	}{
		{1.16, 88},
		{2.00, 51},
		{5.50, 19},
		{1.01, 100}, // clamped
	}

	for _, tt := range tests {
		if got := client.modelWinPercent(tt.price); got != tt.want {
			t.Errorf("modelWinPercent(%v) = %d, want %d", tt.price, got, tt.want)
		}
	}
}

func TestSampleProvider(t *testing.T) {
	p := NewSampleProvider()

	games, err := p.FetchUpcomingGames(context.Background(), "k", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("sample provider returned error: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("games = %d, want 3", len(games))
	}
	if games[0].MarketOdds != "Arsenal 1.16" || games[0].ModelWinProbability != 68 {
		t.Errorf("unexpected first sample game: %+v", games[0])
	}

	if _, err := p.FetchUpcomingGames(context.Background(), "", time.Time{}, time.Time{}); !errors.Is(err, models.ErrAuthentication) {
		t.Errorf("missing key error = %v, want authentication", err)
	}
}
