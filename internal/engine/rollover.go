package engine

import "time"

// applyPenalty deducts one day's life penalty, flooring at zero and recording
// the defeat date when the floor is hit. The penalty date is stamped whether
// or not the day failed.
func applyPenalty(s *State, key DateKey, failed bool) {
	if failed {
		level := s.Progress.Level
		if level < 1 {
			level = 1
		}
		remaining := s.Life.Current - LifePenalty(level)
		if remaining <= 0 {
			s.Life.Current = 0
			s.Life.LastDefeatDate = key
		} else {
			s.Life.Current = remaining
		}
	}
	s.Life.LastPenaltyDate = key
}

func dayFailed(day DaySnapshot) bool {
	return hasActiveGoals(day.Goals) && !IsMissionComplete(day.Goals, day.GoalsDone, day.SkipUsed)
}

// applyDailyRollover handles the single stale day still sitting in Daily:
// archives its snapshot into history, assesses the mission failure penalty
// and stamps the penalty date. A no-op when Daily is already today's or the
// penalty for that date was already taken.
func applyDailyRollover(s *State, now time.Time) {
	today := DateKeyFromTime(now)
	dailyDate := s.Daily.Date
	if dailyDate == "" || dailyDate >= today {
		return
	}
	if s.Life.LastPenaltyDate == dailyDate {
		return
	}

	s.clampLife()
	snap := s.liveSnapshot()
	s.archiveDay(dailyDate, snap)
	applyPenalty(s, dailyDate, dayFailed(snap))
}

// applyPenaltyCatchUp walks every calendar day between the last assessed date
// and today (exclusive), applying the failure penalty day by day. A user gone
// for N days accrues N assessments; life can hit zero partway through and
// later days still stamp their dates. Each step uses the level current at
// that step; no historical level is stored.
func applyPenaltyCatchUp(s *State, now time.Time) {
	today := DateKeyFromTime(now)
	lastPenalty := s.Life.LastPenaltyDate
	dailyDate := s.Daily.Date

	var latestHistory DateKey
	for key := range s.History.Days {
		if key > latestHistory {
			latestHistory = key
		}
	}

	var seed DateKey
	switch {
	case lastPenalty != "":
		seed = lastPenalty
	case dailyDate != "" && dailyDate != today:
		seed = dailyDate
	case latestHistory != "":
		seed = latestHistory
	}
	if seed == "" {
		return
	}

	s.clampLife()

	cursor, ok := seed.Time()
	if !ok {
		return
	}
	end, ok := today.Time()
	if !ok {
		return
	}
	if lastPenalty != "" {
		cursor = cursor.AddDate(0, 0, 1)
	}

	for cursor.Before(end) {
		key := DateKeyFromTime(cursor)
		var snap DaySnapshot
		if key == dailyDate {
			snap = s.liveSnapshot()
			s.archiveDay(key, snap)
		} else if day, found := s.History.Days[key]; found {
			snap = day
		} else {
			// A day with no record at all: current goals, nothing done.
			snap = DaySnapshot{Goals: cloneFloatMap(s.Goals)}
		}

		applyPenalty(s, key, dayFailed(snap))
		cursor = cursor.AddDate(0, 0, 1)
	}
}
