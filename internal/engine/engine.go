package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mpetrov/edgefinder/internal/pkg/config"
	"github.com/mpetrov/edgefinder/internal/pkg/models"
	"github.com/mpetrov/edgefinder/internal/pkg/performance"
)

// GameFeedProvider supplies upcoming games for a lookahead window, restricted
// to one bookmaker's listings, ordered by start time ascending.
type GameFeedProvider interface {
	FetchUpcomingGames(ctx context.Context, apiKey string, windowStart, windowEnd time.Time) ([]models.GameRecord, error)
}

// RunRequest carries the user's settings for one run. The settings live for
// the duration of one run only; the engine holds no cross-run state beyond
// metrics.
type RunRequest struct {
	APIKey string `json:"api_key"`

	// MinEdgePercent is the PLAY/PASS threshold, range [0, 10]. Zero means
	// "use the configured default".
	MinEdgePercent float64 `json:"min_edge_percent"`

	// ShowTop10 sorts by model win probability descending and keeps the
	// top N games.
	ShowTop10 bool `json:"show_top10"`

	// Query optionally filters games by team or matchup substring.
	Query string `json:"query"`
}

// Engine wires the feed provider, the evaluator and the renderer into the
// single run operation.
type Engine struct {
	cfg        config.EngineConfig
	windowDays int
	provider   GameFeedProvider
	tracker    *performance.Tracker
}

// New creates an engine around a feed provider.
func New(cfg config.EngineConfig, windowDays int, provider GameFeedProvider) *Engine {
	if windowDays <= 0 {
		windowDays = 2
	}
	return &Engine{
		cfg:        cfg,
		windowDays: windowDays,
		provider:   provider,
		tracker:    performance.GetTracker(),
	}
}

// RunOnce performs one run: validate the request, fetch the feed, evaluate
// every game, apply the result policy and render cards. Exactly one blocking
// operation happens per run (the fetch); no error is retried.
func (e *Engine) RunOnce(ctx context.Context, req RunRequest) (*models.RunResult, error) {
	started := time.Now()

	minEdge := req.MinEdgePercent
	if minEdge == 0 {
		minEdge = e.cfg.MinEdgePercent
	}

	if err := validateRequest(req.APIKey, minEdge); err != nil {
		return nil, err
	}

	windowStart := time.Now()
	windowEnd := windowStart.AddDate(0, 0, e.windowDays)

	fetchStart := time.Now()
	games, err := e.provider.FetchUpcomingGames(ctx, req.APIKey, windowStart, windowEnd)
	fetchDuration := time.Since(fetchStart)
	if err != nil {
		e.tracker.RecordRun(performance.RunTiming{
			StartedAt:     started,
			Duration:      time.Since(started),
			FetchDuration: fetchDuration,
			Success:       false,
			Error:         err.Error(),
		})
		return nil, err
	}

	evaluated := make([]models.EvaluatedGame, 0, len(games))
	for _, game := range games {
		if req.Query != "" && !matchesQuery(game, req.Query) {
			continue
		}
		eg, err := Evaluate(game, minEdge)
		if err != nil {
			slog.Warn("Skipping game that failed evaluation",
				"participants", game.Participants, "error", err)
			continue
		}
		evaluated = append(evaluated, eg)
	}

	evaluated = ApplyResultPolicy(evaluated, req.ShowTop10, e.cfg.TopN)

	cards := make([]models.Card, 0, len(evaluated))
	for _, eg := range evaluated {
		cards = append(cards, RenderCard(eg))
	}

	result := &models.RunResult{
		Cards:        cards,
		GamesFetched: len(games),
		GamesShown:   len(cards),
		GeneratedAt:  time.Now(),
	}

	e.tracker.RecordRun(performance.RunTiming{
		StartedAt:     started,
		Duration:      time.Since(started),
		FetchDuration: fetchDuration,
		GamesFetched:  len(games),
		CardsRendered: len(cards),
		Success:       true,
	})

	slog.Info("Run completed",
		"games_fetched", len(games),
		"cards", len(cards),
		"min_edge", minEdge,
		"top10", req.ShowTop10,
		"duration", time.Since(started))

	return result, nil
}

// validateRequest rejects a run before any fetch happens.
func validateRequest(apiKey string, minEdge float64) error {
	if strings.TrimSpace(apiKey) == "" {
		return models.NewValidationError("API key is required")
	}
	if minEdge < 0 || minEdge > 10 {
		return models.NewValidationError(
			fmt.Sprintf("min edge percent must be in [0,10], got %v", minEdge))
	}
	return nil
}

// matchesQuery reports whether the game's matchup or listed side contains the
// query, case-insensitively.
func matchesQuery(game models.GameRecord, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(game.Participants), q) ||
		strings.Contains(strings.ToLower(game.MarketOdds), q)
}
