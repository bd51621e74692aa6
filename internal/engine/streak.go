package engine

import "time"

// IsMissionComplete decides whether a day's mission counts. A used skip token
// always completes the day. Otherwise the day needs at least one goal with a
// positive target and at least DailyGoalsTarget goals marked done. The
// threshold is a fixed 4, even when fewer goals are active, so a day with
// fewer than 4 active goals can only be completed via skip.
func IsMissionComplete(goals map[string]float64, goalsDone map[string]bool, skipUsed bool) bool {
	if skipUsed {
		return true
	}
	active, done := 0, 0
	for k, target := range goals {
		if target <= 0 {
			continue
		}
		active++
		if goalsDone[k] {
			done++
		}
	}
	if active == 0 {
		return false
	}
	return done >= DailyGoalsTarget
}

// goalsSnapshot resolves the snapshot for a date: the archived history day if
// present, the live goals and daily working set when the key is today, and an
// empty (failing) snapshot otherwise. Days before account creation therefore
// read as incomplete, which bounds the streak walk.
func goalsSnapshot(s *State, key, today DateKey) DaySnapshot {
	if day, ok := s.History.Days[key]; ok {
		return day
	}
	if key == today {
		return s.liveSnapshot()
	}
	return DaySnapshot{}
}

// MissionStreak counts consecutive complete days ending today, or yesterday
// when today's mission is still open.
func MissionStreak(s *State, now time.Time) int {
	today := DateKeyFromTime(now)
	cursor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	todaySnap := goalsSnapshot(s, today, today)
	if !IsMissionComplete(todaySnap.Goals, todaySnap.GoalsDone, todaySnap.SkipUsed) {
		cursor = cursor.AddDate(0, 0, -1)
	}

	count := 0
	for {
		key := DateKeyFromTime(cursor)
		snap := goalsSnapshot(s, key, today)
		if !IsMissionComplete(snap.Goals, snap.GoalsDone, snap.SkipUsed) {
			break
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return count
}
