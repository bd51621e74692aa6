package engine

import (
	"math"
	"time"
)

// RuleType selects which progress source an achievement rule reads.
type RuleType string

const (
	RuleLevel   RuleType = "level"
	RuleStreak  RuleType = "streak"
	RuleGoals   RuleType = "goals"
	RuleActions RuleType = "actions"
)

// Rule is one row of the static achievement table.
type Rule struct {
	ID     string
	Title  string
	Type   RuleType
	Target int
}

// Rules is an explicit ordered sequence: grants within one sweep always
// happen in table order.
var Rules = []Rule{
	{ID: "level_2", Title: "First jump: level 2", Type: RuleLevel, Target: 2},
	{ID: "level_5", Title: "Strong run: level 5", Type: RuleLevel, Target: 5},
	{ID: "level_10", Title: "Double digits: level 10", Type: RuleLevel, Target: 10},
	{ID: "level_25", Title: "Mastery: level 25", Type: RuleLevel, Target: 25},
	{ID: "level_50", Title: "Legend: level 50", Type: RuleLevel, Target: 50},
	{ID: "level_100", Title: "Eternal: level 100", Type: RuleLevel, Target: 100},
	{ID: "streak_3", Title: "Early consistency: 3-day streak", Type: RuleStreak, Target: 3},
	{ID: "streak_7", Title: "A full week", Type: RuleStreak, Target: 7},
	{ID: "streak_14", Title: "Two weeks straight", Type: RuleStreak, Target: 14},
	{ID: "streak_30", Title: "Perfect month", Type: RuleStreak, Target: 30},
	{ID: "streak_60", Title: "Two spotless months", Type: RuleStreak, Target: 60},
	{ID: "streak_100", Title: "A hundred days strong", Type: RuleStreak, Target: 100},
	{ID: "goals_10", Title: "10 goals completed", Type: RuleGoals, Target: 10},
	{ID: "goals_50", Title: "50 goals completed", Type: RuleGoals, Target: 50},
	{ID: "goals_150", Title: "150 goals completed", Type: RuleGoals, Target: 150},
	{ID: "goals_300", Title: "300 goals completed", Type: RuleGoals, Target: 300},
	{ID: "goals_600", Title: "600 goals completed", Type: RuleGoals, Target: 600},
	{ID: "actions_20", Title: "20 bonus actions", Type: RuleActions, Target: 20},
	{ID: "actions_100", Title: "100 bonus actions", Type: RuleActions, Target: 100},
	{ID: "actions_300", Title: "300 bonus actions", Type: RuleActions, Target: 300},
	{ID: "actions_600", Title: "600 bonus actions", Type: RuleActions, Target: 600},
	{ID: "actions_1200", Title: "1200 bonus actions", Type: RuleActions, Target: 1200},
}

// rewardXP is a step function of (type, target): higher targets pay more,
// with per-type tier boundaries.
func rewardXP(r Rule) int {
	target := r.Target
	switch r.Type {
	case RuleLevel:
		switch {
		case target <= 2:
			return 120
		case target <= 5:
			return 220
		case target <= 10:
			return 420
		case target <= 25:
			return 900
		case target <= 50:
			return 1800
		case target <= 100:
			return 3500
		default:
			return 5000
		}
	case RuleStreak:
		switch {
		case target <= 3:
			return 100
		case target <= 7:
			return 200
		case target <= 14:
			return 380
		case target <= 30:
			return 700
		case target <= 60:
			return 1300
		case target <= 100:
			return 2200
		default:
			return 3000
		}
	case RuleGoals:
		switch {
		case target <= 10:
			return 120
		case target <= 50:
			return 300
		case target <= 150:
			return 600
		case target <= 300:
			return 1000
		case target <= 600:
			return 1600
		default:
			return 2400
		}
	case RuleActions:
		switch {
		case target <= 20:
			return 120
		case target <= 100:
			return 320
		case target <= 300:
			return 700
		case target <= 600:
			return 1200
		case target <= 1200:
			return 2000
		default:
			return 2800
		}
	}
	return 150
}

func countDone(m map[string]bool) int {
	n := 0
	for _, done := range m {
		if done {
			n++
		}
	}
	return n
}

func totalGoalsDone(s *State) int {
	sum := 0
	for _, day := range s.History.Days {
		sum += countDone(day.GoalsDone)
	}
	return sum
}

func totalActionsDone(s *State) int {
	sum := 0
	for _, day := range s.History.Days {
		sum += countDone(day.Actions)
	}
	return sum
}

// RuleProgress is the live progress of one rule. Nothing here is stored;
// it is recomputed from Progress and History on demand.
type RuleProgress struct {
	Current int
	Target  int
	Pct     int
}

// AchievementProgress computes a rule's live progress against the state.
func AchievementProgress(r Rule, s *State, now time.Time) RuleProgress {
	current := 0
	switch r.Type {
	case RuleLevel:
		current = s.Progress.Level
	case RuleStreak:
		current = MissionStreak(s, now)
	case RuleGoals:
		current = totalGoalsDone(s)
	case RuleActions:
		current = totalActionsDone(s)
	}

	target := r.Target
	safeTarget := target
	if safeTarget < 1 {
		safeTarget = 1
	}
	pct := int(math.Round(100 * float64(current) / float64(safeTarget)))
	if pct > 100 {
		pct = 100
	}
	return RuleProgress{Current: current, Target: target, Pct: pct}
}

// GrantAchievements appends every newly met rule, in table order, without
// rewards. Granted ids are permanent; a second sweep on an unchanged state
// grants nothing.
func GrantAchievements(s *State, now time.Time) []Achievement {
	have := map[string]bool{}
	next := append([]Achievement(nil), s.Achievements...)
	for _, a := range next {
		have[a.ID] = true
	}

	for _, rule := range Rules {
		if have[rule.ID] {
			continue
		}
		p := AchievementProgress(rule, s, now)
		if p.Current >= p.Target {
			next = append(next, Achievement{ID: rule.ID, Title: rule.Title, EarnedAt: now})
			have[rule.ID] = true
		}
	}
	return next
}

// EarnedReward reports a freshly granted achievement and its XP payout.
type EarnedReward struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	XP    int    `json:"xp"`
}

// GrantAchievementRewards is GrantAchievements plus the XP payouts for the
// newly granted rules. Idempotent: a second call on the same state returns
// no earned rewards and zero XP.
func GrantAchievementRewards(s *State, now time.Time) (achievements []Achievement, earned []EarnedReward, xp int) {
	have := map[string]bool{}
	achievements = append([]Achievement(nil), s.Achievements...)
	for _, a := range achievements {
		have[a.ID] = true
	}

	for _, rule := range Rules {
		if have[rule.ID] {
			continue
		}
		p := AchievementProgress(rule, s, now)
		if p.Current >= p.Target {
			reward := rewardXP(rule)
			achievements = append(achievements, Achievement{ID: rule.ID, Title: rule.Title, EarnedAt: now})
			have[rule.ID] = true
			earned = append(earned, EarnedReward{ID: rule.ID, Title: rule.Title, XP: reward})
			xp += reward
		}
	}
	return achievements, earned, xp
}
