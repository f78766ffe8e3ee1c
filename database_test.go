package main

import (
	"fmt"
	"testing"
	"time"
)

func TestSettings(t *testing.T) {
	db := openTestDB(t)

	if v := db.GetSetting("missing"); v != "" {
		t.Errorf("expected empty setting, got %q", v)
	}
	if err := db.SetSetting("k", "one"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := db.SetSetting("k", "two"); err != nil {
		t.Fatalf("SetSetting overwrite: %v", err)
	}
	if v := db.GetSetting("k"); v != "two" {
		t.Errorf("expected two, got %q", v)
	}
}

func TestRecordResultOnce(t *testing.T) {
	db := openTestDB(t)
	r := MatchResult{
		MatchID:    "abc",
		PlayerName: "Ace",
		Outcome:    "won",
		Ticks:      600,
		Kills:      5,
		ShotsFired: 12,
	}
	if err := db.RecordResult(r); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	r.Outcome = "lost"
	if err := db.RecordResult(r); err != nil {
		t.Fatalf("RecordResult duplicate: %v", err)
	}

	results, err := db.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	got := results[0]
	if got.Outcome != "won" || got.Ticks != 600 || got.Kills != 5 || got.ShotsFired != 12 {
		t.Errorf("unexpected result %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestRecentResultsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := db.RecordResult(MatchResult{
			MatchID:    fmt.Sprintf("m%d", i),
			PlayerName: "Ace",
			Outcome:    "lost",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
	}

	results, err := db.RecentResults(3)
	if err != nil {
		t.Fatalf("RecentResults: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"m4", "m3", "m2"} {
		if results[i].MatchID != want {
			t.Errorf("results[%d] = %s, want %s", i, results[i].MatchID, want)
		}
	}
}

func TestRecentResultsEmpty(t *testing.T) {
	db := openTestDB(t)
	results, err := db.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", results)
	}
}

func TestAnalyticsFlushOnStop(t *testing.T) {
	db := openTestDB(t)
	a := NewAnalytics(db)
	for i := 0; i < 3; i++ {
		a.Track(EvtShot, "m1", uint64(i), "")
	}
	a.Track(EvtEnemyHit, "m1", 4, `{"enemy":"enemy-1","dmg":25}`)
	a.Track(EvtShot, "m2", 1, "")
	a.Stop()
	a.Stop()

	counts, err := db.EventCounts("m1")
	if err != nil {
		t.Fatalf("EventCounts: %v", err)
	}
	if counts[EvtShot] != 3 || counts[EvtEnemyHit] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
	if len(counts) != 2 {
		t.Errorf("expected 2 event types, got %v", counts)
	}
}

func TestAnalyticsNil(t *testing.T) {
	var a *Analytics
	a.Track(EvtShot, "m1", 0, "")
}
