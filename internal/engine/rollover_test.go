package engine

import (
	"testing"
	"time"
)

func TestRolloverArchivesAndPenalizesFailedDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	yesterday := DateKeyFromTime(now).Prev()

	s := DefaultState()
	s.Goals = fourGoals()
	s.Daily = EnsureDaily(Daily{}, yesterday)

	applyDailyRollover(s, now)

	day, ok := s.History.Days[yesterday]
	if !ok {
		t.Fatalf("yesterday not archived")
	}
	if len(day.GoalsDone) != 0 {
		t.Fatalf("archived snapshot should be empty: %+v", day)
	}
	if want := 100 - LifePenalty(1); s.Life.Current != want {
		t.Fatalf("life=%d, want %d", s.Life.Current, want)
	}
	if s.Life.LastPenaltyDate != yesterday {
		t.Fatalf("lastPenaltyDate=%s, want %s", s.Life.LastPenaltyDate, yesterday)
	}
}

func TestRolloverSparesCompleteDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	yesterday := DateKeyFromTime(now).Prev()

	s := DefaultState()
	s.Goals = fourGoals()
	s.Daily = EnsureDaily(Daily{}, yesterday)
	s.Daily.GoalsDone = fourGoalsDone()

	applyDailyRollover(s, now)

	if s.Life.Current != 100 {
		t.Fatalf("life=%d, want untouched 100", s.Life.Current)
	}
	if s.Life.LastPenaltyDate != yesterday {
		t.Fatalf("penalty date should be stamped even without a penalty")
	}
}

func TestRolloverStampsGoallessDayWithoutPenalty(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	yesterday := DateKeyFromTime(now).Prev()

	s := DefaultState()
	s.Daily = EnsureDaily(Daily{}, yesterday)

	applyDailyRollover(s, now)

	if s.Life.Current != 100 {
		t.Fatalf("life=%d, a day with no active goals cannot fail", s.Life.Current)
	}
	if s.Life.LastPenaltyDate != yesterday {
		t.Fatalf("penalty date not stamped")
	}
}

func TestRolloverRunsOncePerDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	yesterday := DateKeyFromTime(now).Prev()

	s := DefaultState()
	s.Goals = fourGoals()
	s.Daily = EnsureDaily(Daily{}, yesterday)

	applyDailyRollover(s, now)
	lifeAfterOne := s.Life.Current
	applyDailyRollover(s, now)
	if s.Life.Current != lifeAfterOne {
		t.Fatalf("second rollover changed life: %d -> %d", lifeAfterOne, s.Life.Current)
	}
}

func TestCatchUpChargesEveryMissedDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	s := DefaultState()
	s.Goals = fourGoals()
	// Last seen 4 days ago: rollover handles that day, catch-up the 3 after.
	s.Daily = EnsureDaily(Daily{}, DateKey("2026-03-06"))

	applyDailyRollover(s, now)
	applyPenaltyCatchUp(s, now)

	want := 100 - 4*LifePenalty(1)
	if s.Life.Current != want {
		t.Fatalf("life=%d, want %d after 4 failed days", s.Life.Current, want)
	}
	if s.Life.LastPenaltyDate != DateKey("2026-03-09") {
		t.Fatalf("lastPenaltyDate=%s, want 2026-03-09", s.Life.LastPenaltyDate)
	}
	for _, key := range []DateKey{"2026-03-07", "2026-03-08"} {
		if _, ok := s.History.Days[key]; ok {
			t.Fatalf("%s has no record and should not be archived", key)
		}
	}
}

func TestCatchUpRespectsArchivedCompleteDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	s := DefaultState()
	s.Goals = fourGoals()
	s.Life.LastPenaltyDate = DateKey("2026-03-06")
	s.History.Days[DateKey("2026-03-07")] = DaySnapshot{Goals: fourGoals(), GoalsDone: fourGoalsDone()}
	s.History.Days[DateKey("2026-03-08")] = DaySnapshot{Goals: fourGoals(), SkipUsed: true}
	s.Daily = EnsureDaily(Daily{}, DateKeyFromTime(now))

	applyPenaltyCatchUp(s, now)

	// Only 2026-03-09 had no record and fails.
	want := 100 - LifePenalty(1)
	if s.Life.Current != want {
		t.Fatalf("life=%d, want %d", s.Life.Current, want)
	}
}

func TestCatchUpCanDefeat(t *testing.T) {
	now := time.Date(2026, 3, 30, 9, 0, 0, 0, time.Local)

	s := DefaultState()
	s.Goals = fourGoals()
	s.Daily = EnsureDaily(Daily{}, DateKey("2026-03-01"))

	applyDailyRollover(s, now)
	applyPenaltyCatchUp(s, now)

	if s.Life.Current != 0 {
		t.Fatalf("life=%d, want 0 after a month away", s.Life.Current)
	}
	if s.Life.LastDefeatDate == "" {
		t.Fatalf("defeat date not recorded")
	}
	// Later days still stamp their penalty dates past the defeat.
	if s.Life.LastPenaltyDate != DateKey("2026-03-29") {
		t.Fatalf("lastPenaltyDate=%s, want 2026-03-29", s.Life.LastPenaltyDate)
	}
}

func TestArchiveDayIsWriteOnce(t *testing.T) {
	s := DefaultState()
	key := DateKey("2026-03-05")
	s.archiveDay(key, DaySnapshot{SkipUsed: true})
	s.archiveDay(key, DaySnapshot{})
	if !s.History.Days[key].SkipUsed {
		t.Fatalf("existing snapshot overwritten")
	}
}

func TestRewriteTodayOverwrites(t *testing.T) {
	today := DateKey("2026-03-05")
	s := DefaultState()
	s.Daily = EnsureDaily(Daily{}, today)
	s.rewriteToday(today)
	s.Daily.GoalsDone["steps"] = true
	s.rewriteToday(today)
	if !s.History.Days[today].GoalsDone["steps"] {
		t.Fatalf("today's snapshot not rewritten")
	}
}
