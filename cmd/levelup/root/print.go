package root

import (
	"fmt"
	"io"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

// printRewards reports the reward tail of a successful dispatch: XP, level-ups
// and any achievements the action unlocked.
func printRewards(out io.Writer, res *engine.Result) {
	if res == nil {
		return
	}
	if res.XPGained > 0 {
		fmt.Fprintf(out, "%s +%d XP\n", ui.IconBolt, res.XPGained)
	}
	for _, a := range res.AchievementsEarned {
		fmt.Fprintf(out, "%s %s (+%d XP)\n", ui.IconTrophy, a.Title, a.XP)
	}
	for _, lvl := range res.LevelUps {
		fmt.Fprintf(out, "%s level %d reached (+1 token, life restored)\n", ui.BadgeLevelUp, lvl)
	}
}
