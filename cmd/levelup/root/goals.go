package root

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newGoalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage daily goal targets",
	}
	cmd.AddCommand(newGoalsListCmd(), newGoalsSetCmd(), newGoalsDoneCmd())
	return cmd
}

func newGoalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goal targets and today's completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st := store.State()
			out := cmd.OutOrStdout()
			keys := make([]string, 0, len(st.Goals))
			for key := range st.Goals {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			fmt.Fprintln(out, ui.Heading(ui.IconTarget, "Goals"))
			for _, key := range keys {
				target := st.Goals[key]
				if target <= 0 {
					fmt.Fprintf(out, "- %s %s\n", key, ui.Muted.Render("(inactive)"))
					continue
				}
				mark := "[ ]"
				if st.Daily.GoalsDone[key] {
					mark = "[x]"
				}
				fmt.Fprintf(out, "- %s %s (target %g)\n", mark, key, target)
			}
			return nil
		},
	}
}

func newGoalsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <target>",
		Short: "Set a goal target (0 deactivates it)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("key and target are required")
			}
			if _, err := strconv.ParseFloat(args[1], 64); err != nil {
				return errors.New("target must be a number")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			value, _ := strconv.ParseFloat(args[1], 64)
			store.Dispatch(engine.GoalsSet{Key: args[0], Value: value})
			fmt.Fprintf(cmd.OutOrStdout(), "%s set to %g\n", args[0], value)
			return nil
		},
	}
}

func newGoalsDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <key>",
		Short: "Mark a goal done for today and collect XP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res := store.Dispatch(engine.GoalComplete{Key: args[0]})
			if res.Failed() {
				return declineErr(res.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s done\n", ui.Good.Render("✔"), args[0])
			printRewards(cmd.OutOrStdout(), res)
			return nil
		},
	}
}
