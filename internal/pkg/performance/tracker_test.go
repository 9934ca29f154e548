package performance

import (
	"testing"
	"time"
)

func TestTracker_RecordRun(t *testing.T) {
	tracker := &Tracker{}

	tracker.RecordRun(RunTiming{
		StartedAt:     time.Now(),
		Duration:      100 * time.Millisecond,
		FetchDuration: 60 * time.Millisecond,
		GamesFetched:  6,
		CardsRendered: 3,
		Success:       true,
	})
	tracker.RecordRun(RunTiming{
		StartedAt: time.Now(),
		Duration:  50 * time.Millisecond,
		Success:   false,
		Error:     "odds feed unavailable",
	})

	m := tracker.GetMetrics()

	if m.TotalRuns != 2 {
		t.Errorf("total runs = %d, want 2", m.TotalRuns)
	}
	if m.FailedRuns != 1 {
		t.Errorf("failed runs = %d, want 1", m.FailedRuns)
	}
	if m.TotalGames != 6 || m.TotalCards != 3 {
		t.Errorf("games/cards = %d/%d, want 6/3", m.TotalGames, m.TotalCards)
	}
	if m.AvgRunDuration != (75 * time.Millisecond).String() {
		t.Errorf("avg duration = %s, want 75ms", m.AvgRunDuration)
	}
	if !m.LastRun.Success && m.LastRun.Error == "" {
		t.Error("last run error not recorded")
	}
}

func TestTracker_Reset(t *testing.T) {
	tracker := &Tracker{}
	tracker.RecordRun(RunTiming{Duration: time.Second, GamesFetched: 2, Success: true})

	tracker.Reset()

	m := tracker.GetMetrics()
	if m.TotalRuns != 0 || m.TotalGames != 0 {
		t.Errorf("reset left data behind: %+v", m)
	}
}
