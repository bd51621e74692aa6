package engine

import "testing"

func TestEnsureDailyResetsStaleDate(t *testing.T) {
	stale := Daily{
		Date:      DateKey("2026-03-01"),
		Actions:   map[string]bool{"train_easy": true},
		GoalsDone: map[string]bool{"steps": true},
		SkipUsed:  true,
	}
	got := EnsureDaily(stale, DateKey("2026-03-02"))
	if got.Date != "2026-03-02" {
		t.Fatalf("date=%s, want 2026-03-02", got.Date)
	}
	if len(got.Actions) != 0 || len(got.GoalsDone) != 0 || len(got.BonusCategories) != 0 {
		t.Fatalf("stale working set not cleared: %+v", got)
	}
	if got.SkipUsed {
		t.Fatalf("skipUsed should reset")
	}
}

func TestEnsureDailyFillsNilMaps(t *testing.T) {
	got := EnsureDaily(Daily{Date: DateKey("2026-03-02")}, DateKey("2026-03-02"))
	if got.Actions == nil || got.BonusCategories == nil || got.GoalsDone == nil {
		t.Fatalf("nil maps not replaced: %+v", got)
	}
}

func TestEnsureDailyIdempotent(t *testing.T) {
	today := DateKey("2026-03-02")
	d := Daily{Date: today, Actions: map[string]bool{"walk_1h": true}, GoalsDone: map[string]bool{}, BonusCategories: map[string]bool{}}
	once := EnsureDaily(d, today)
	twice := EnsureDaily(once, today)
	if !twice.Actions["walk_1h"] {
		t.Fatalf("second normalization lost the working set")
	}
	if twice.Date != once.Date {
		t.Fatalf("date changed on second normalization")
	}
}

func TestMarkActionDoneCopies(t *testing.T) {
	d := Daily{Date: DateKey("2026-03-02"), Actions: map[string]bool{}, BonusCategories: map[string]bool{}, GoalsDone: map[string]bool{}}
	out := MarkActionDone(d, "read_1h")
	if !HasDoneAction(out, "read_1h") {
		t.Fatalf("action not marked")
	}
	if HasDoneAction(d, "read_1h") {
		t.Fatalf("original record mutated")
	}
}
