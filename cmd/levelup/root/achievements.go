package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Show earned achievements and progress toward the rest",
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

			earned := map[string]engine.Achievement{}
			for _, a := range st.Achievements {
				earned[a.ID] = a
			}

			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements (%d/%d)", len(earned), len(engine.Rules))))
			for _, rule := range engine.Rules {
				if a, ok := earned[rule.ID]; ok {
					fmt.Fprintf(out, "- %s %s %s\n", ui.Good.Render("✔"), rule.Title, ui.Muted.Render(a.EarnedAt.Format("2006-01-02")))
					continue
				}
				p := engine.AchievementProgress(rule, st, now)
				fmt.Fprintf(out, "- %s %s %d%% (%d/%d)\n", ui.Bar(p.Current, p.Target, 12), rule.Title, p.Pct, p.Current, p.Target)
			}
			return nil
		},
	}
	return cmd
}
