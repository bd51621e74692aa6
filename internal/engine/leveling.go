package engine

import "math"

const (
	// BaseGoalXP is the flat XP granted for completing a daily goal,
	// before the level multiplier.
	BaseGoalXP = 100

	// DailyGoalsTarget is the fixed number of completed goals a day needs
	// for its mission to count. It does not scale with how many goals are
	// actually configured.
	DailyGoalsTarget = 4

	xpLevelDivisor   = 150.0
	xpRequiredFactor = 1.20
	baseLifePenalty  = 10.0
)

// XPMultiplier scales XP gains with the current level: 1 + level/150.
func XPMultiplier(level int) float64 {
	return 1 + float64(level)/xpLevelDivisor
}

// XPNeeded returns the XP required to advance from the given level to the
// next one. Strictly increasing in level.
func XPNeeded(level int) int {
	return int(math.Round(BaseGoalXP * DailyGoalsTarget * float64(level) * XPMultiplier(level) * xpRequiredFactor))
}

// AddXP applies a non-negative XP amount to a Progress value, rolling
// overflow into level-ups. It returns the new Progress and the ordered list
// of levels reached, which may span several levels for one large grant.
func AddXP(p Progress, amount int) (Progress, []int) {
	if amount < 0 {
		amount = 0
	}
	level := p.Level
	xp := p.XP + amount

	var levelUps []int
	for xp >= XPNeeded(level) {
		xp -= XPNeeded(level)
		level++
		levelUps = append(levelUps, level)
	}

	return Progress{Level: level, XP: xp}, levelUps
}

// LifeForLevel is the maximum life at a level: 100 + 2n² + 5n with n = level-1.
func LifeForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	n := level - 1
	return 100 + 2*n*n + 5*n
}

// LifePenalty is the life lost for one failed day: round(10 + level*1.5).
func LifePenalty(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Round(baseLifePenalty + float64(level)*1.5))
}
