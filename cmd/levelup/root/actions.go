package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newActionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "Bonus actions: extra XP on top of daily goals",
	}
	cmd.AddCommand(newActionsListCmd(), newActionsDoCmd())
	return cmd
}

func newActionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the action catalog grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st := store.State()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBolt, "Bonus actions"))
			for _, group := range engine.GroupedByCategory() {
				label := group.Category
				if st.Daily.BonusCategories[group.Category] {
					label += " " + ui.Gold.Render("(category bonus earned)")
				}
				fmt.Fprintln(out, ui.H2.Render(label))
				for _, a := range group.Actions {
					mark := "[ ]"
					if st.Daily.Actions[a.Key] {
						mark = "[x]"
					}
					fmt.Fprintf(out, "- %s %s  %s (+%d XP)\n", mark, ui.Key.Render(a.Key), a.Label, a.XP)
				}
			}
			return nil
		},
	}
}

func newActionsDoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "do <key>",
		Short: "Complete a bonus action and collect XP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if engine.ActionByKey(args[0]) == nil {
				return fmt.Errorf("unknown action %q: see `levelup actions list`", args[0])
			}
			res := store.Dispatch(engine.DoAction{Key: args[0]})
			if res.Failed() {
				return declineErr(res.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s done\n", ui.Good.Render("✔"), args[0])
			printRewards(cmd.OutOrStdout(), res)
			return nil
		},
	}
}
