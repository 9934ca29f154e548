package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mpetrov/edgefinder/internal/pkg/config"
	"github.com/mpetrov/edgefinder/internal/pkg/models"
	"github.com/mpetrov/edgefinder/internal/pkg/validation"
)

const startTimeLayout = "Jan 02, 2006 — 3:04 PM MST"

// Client fetches upcoming games from The Odds API, restricted to one
// bookmaker's h2h (moneyline) listings.
type Client struct {
	cfg        config.OddsAPIConfig
	vigFactor  float64
	httpClient *http.Client
}

// NewClient creates a feed client. vigFactor is the baseline model's vig
// adjustment applied when deriving a win probability from the price.
func NewClient(cfg config.OddsAPIConfig, vigFactor float64) *Client {
	if vigFactor <= 0 {
		vigFactor = 0.98
	}
	return &Client{
		cfg:       cfg,
		vigFactor: vigFactor,
		httpClient: &http.Client{
			Timeout: cfg.TimeoutDuration(),
		},
	}
}

// FetchUpcomingGames returns one GameRecord per listed outcome for every
// configured sport, ordered by start time ascending. Any non-2xx response
// aborts the whole fetch; malformed events are skipped quietly.
func (c *Client) FetchUpcomingGames(ctx context.Context, apiKey string, windowStart, windowEnd time.Time) ([]models.GameRecord, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: missing API key", models.ErrAuthentication)
	}

	var games []models.GameRecord
	for _, sport := range c.cfg.Sports {
		events, err := c.fetchSportOdds(ctx, apiKey, sport)
		if err != nil {
			return nil, err
		}

		for i := range events {
			games = append(games, c.gamesFromEvent(&events[i], windowStart, windowEnd)...)
		}
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].StartAt.Before(games[j].StartAt)
	})

	return games, nil
}

// fetchSportOdds performs one GET to /v4/sports/{sport}/odds.
func (c *Client) fetchSportOdds(ctx context.Context, apiKey, sport string) ([]apiEvent, error) {
	u, err := url.Parse(strings.TrimSuffix(c.cfg.BaseURL, "/") + "/v4/sports/" + sport + "/odds")
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base URL: %v", models.ErrUpstreamUnavailable, err)
	}

	q := u.Query()
	q.Set("apiKey", apiKey)
	q.Set("regions", c.cfg.Regions)
	q.Set("markets", c.cfg.Markets)
	q.Set("oddsFormat", c.cfg.OddsFormat)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", models.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d for sport %s", models.ErrAuthentication, resp.StatusCode, sport)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d for sport %s", models.ErrQuotaExceeded, resp.StatusCode, sport)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status %d for sport %s: %s",
			models.ErrUpstreamUnavailable, resp.StatusCode, sport, strings.TrimSpace(string(body)))
	}

	var events []apiEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response for sport %s: %v",
			models.ErrUpstreamUnavailable, sport, err)
	}

	return events, nil
}

// gamesFromEvent builds one GameRecord per outcome of the configured
// bookmaker's first h2h market, keeping only events inside the window.
func (c *Client) gamesFromEvent(ev *apiEvent, windowStart, windowEnd time.Time) []models.GameRecord {
	if ev.CommenceTime.IsZero() || ev.CommenceTime.Before(windowStart) || ev.CommenceTime.After(windowEnd) {
		return nil
	}
	if ev.HomeTeam == "" || ev.AwayTeam == "" {
		slog.Debug("Skipping event without teams", "event_id", ev.ID, "sport", ev.SportKey)
		return nil
	}

	var book *apiBookmaker
	for i := range ev.Bookmakers {
		if ev.Bookmakers[i].Key == c.cfg.Bookmaker {
			book = &ev.Bookmakers[i]
			break
		}
	}
	if book == nil || len(book.Markets) == 0 {
		return nil
	}

	sport := ev.SportTitle
	if sport == "" {
		sport = ev.SportKey
	}
	matchup := ev.HomeTeam + " vs " + ev.AwayTeam
	start := ev.CommenceTime.Local()

	var games []models.GameRecord
	for _, out := range book.Markets[0].Outcomes {
		if out.Name == "" || out.Price <= 1.0 {
			slog.Debug("Skipping malformed outcome", "event_id", ev.ID, "outcome", out.Name, "price", out.Price)
			continue
		}

		game := models.GameRecord{
			Sport:               sport,
			Participants:        matchup,
			MarketOdds:          out.Name + " " + strconv.FormatFloat(out.Price, 'f', 2, 64),
			ModelWinProbability: c.modelWinPercent(out.Price),
			StartTime:           start.Format(startTimeLayout),
			StartAt:             ev.CommenceTime,
		}

		if err := validation.ValidateGameRecord(&game); err != nil {
			slog.Debug("Skipping invalid game record", "event_id", ev.ID, "error", err)
			continue
		}
		games = append(games, game)
	}

	return games
}

// modelWinPercent is the baseline model: the market-implied probability with
// a small vigorish adjustment, as an integer percent clamped to [0, 100].
func (c *Client) modelWinPercent(price float64) int {
	p := int(math.Round(100.0 / (price * c.vigFactor)))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}
