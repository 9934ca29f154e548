package performance

import (
	"sync"
	"time"
)

// Tracker accumulates run metrics for the /metrics endpoint.
type Tracker struct {
	mu sync.RWMutex

	// Overall counters
	TotalRuns    int
	FailedRuns   int
	TotalGames   int
	TotalCards   int

	// Timing totals
	TotalDuration time.Duration
	FetchDuration time.Duration

	// Last run snapshot
	LastRun RunTiming
}

// RunTiming captures the shape of a single run.
type RunTiming struct {
	StartedAt     time.Time
	Duration      time.Duration
	FetchDuration time.Duration
	GamesFetched  int
	CardsRendered int
	Success       bool
	Error         string
}

var globalTracker = &Tracker{}

// GetTracker returns the global run tracker.
func GetTracker() *Tracker {
	return globalTracker
}

// Reset clears all metrics.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.TotalRuns = 0
	t.FailedRuns = 0
	t.TotalGames = 0
	t.TotalCards = 0
	t.TotalDuration = 0
	t.FetchDuration = 0
	t.LastRun = RunTiming{}
}

// RecordRun adds one run's timing to the totals.
func (t *Tracker) RecordRun(timing RunTiming) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.TotalRuns++
	if !timing.Success {
		t.FailedRuns++
	}
	t.TotalGames += timing.GamesFetched
	t.TotalCards += timing.CardsRendered
	t.TotalDuration += timing.Duration
	t.FetchDuration += timing.FetchDuration
	t.LastRun = timing
}

// Metrics is the JSON shape served by /metrics.
type Metrics struct {
	TotalRuns      int     `json:"total_runs"`
	FailedRuns     int     `json:"failed_runs"`
	TotalGames     int     `json:"total_games"`
	TotalCards     int     `json:"total_cards"`
	TotalDuration  string  `json:"total_duration"`
	FetchDuration  string  `json:"fetch_duration"`
	AvgRunDuration string  `json:"avg_run_duration"`
	LastRun        LastRun `json:"last_run"`
}

type LastRun struct {
	StartedAt     time.Time `json:"started_at"`
	Duration      string    `json:"duration"`
	FetchDuration string    `json:"fetch_duration"`
	GamesFetched  int       `json:"games_fetched"`
	CardsRendered int       `json:"cards_rendered"`
	Success       bool      `json:"success"`
	Error         string    `json:"error,omitempty"`
}

// GetMetrics returns a snapshot of the accumulated metrics.
func (t *Tracker) GetMetrics() Metrics {
	t.mu.RLock()
	defer t.mu.RUnlock()

	avg := time.Duration(0)
	if t.TotalRuns > 0 {
		avg = t.TotalDuration / time.Duration(t.TotalRuns)
	}

	return Metrics{
		TotalRuns:      t.TotalRuns,
		FailedRuns:     t.FailedRuns,
		TotalGames:     t.TotalGames,
		TotalCards:     t.TotalCards,
		TotalDuration:  t.TotalDuration.String(),
		FetchDuration:  t.FetchDuration.String(),
		AvgRunDuration: avg.String(),
		LastRun: LastRun{
			StartedAt:     t.LastRun.StartedAt,
			Duration:      t.LastRun.Duration.String(),
			FetchDuration: t.LastRun.FetchDuration.String(),
			GamesFetched:  t.LastRun.GamesFetched,
			CardsRendered: t.LastRun.CardsRendered,
			Success:       t.LastRun.Success,
			Error:         t.LastRun.Error,
		},
	}
}
