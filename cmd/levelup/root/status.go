package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, life, tokens, streak and today's mission",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st := store.State()
			now := store.Now()
			out := cmd.OutOrStdout()

			level := st.Progress.Level
			need := engine.XPNeeded(level)
			lifeMax := engine.LifeForLevel(level)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "LevelUp — "+st.User.Name))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d  %s %d/%d XP", level, ui.Bar(st.Progress.XP, need, 24), st.Progress.XP, need)))
			fmt.Fprintln(out, ui.LabelValue("Life", fmt.Sprintf("%s %s", ui.IconHeart, ui.LifeText(st.Life.Current, lifeMax))))
			fmt.Fprintln(out, ui.LabelValue("Tokens", fmt.Sprintf("%s %d", ui.IconToken, st.Tokens)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d days", ui.IconFlame, engine.MissionStreak(st, now))))
			if st.Defeated() {
				fmt.Fprintln(out, ui.BadgeDead+" "+ui.Muted.Render("run `levelup revive` to start over"))
			}

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(ui.IconTarget+" Today's mission"))
			done := 0
			keys := make([]string, 0, len(st.Goals))
			for key := range st.Goals {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			active := 0
			for _, key := range keys {
				if st.Goals[key] <= 0 {
					continue
				}
				active++
				mark := "[ ]"
				if st.Daily.GoalsDone[key] {
					mark = "[x]"
					done++
				}
				fmt.Fprintf(out, "- %s %s (target %g)\n", mark, key, st.Goals[key])
			}
			if active == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no active goals — set targets with `levelup goals set`)"))
			}
			switch {
			case st.Daily.SkipUsed:
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("Mission skipped today (%s token spent)", ui.IconToken)))
			case engine.IsMissionComplete(st.Goals, st.Daily.GoalsDone, st.Daily.SkipUsed):
				fmt.Fprintln(out, ui.Good.Render("Mission complete"))
			default:
				fmt.Fprintf(out, "%s %d/%d goals done\n", ui.Key.Render("Mission:"), done, engine.DailyGoalsTarget)
			}
			return nil
		},
	}
	return cmd
}
