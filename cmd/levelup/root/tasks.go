package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Free-form task list (no XP attached)",
	}
	cmd.AddCommand(newTasksListCmd(), newTasksAddCmd(), newTasksDoneCmd())
	return cmd
}

func newTasksListCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st := store.State()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconInfo, "Tasks"))
			shown := 0
			for _, t := range st.Tasks {
				if t.Done && !all {
					continue
				}
				mark := "[ ]"
				if t.Done {
					mark = "[x]"
				}
				fmt.Fprintf(out, "- %s %s %s\n", mark, t.Text, ui.Muted.Render(t.ID))
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing here)"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include done tasks")
	return cmd
}

func newTasksAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New("task text is required")
			}
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			store.Dispatch(engine.TaskAdd{Text: text})
			st := store.State()
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", ui.Muted.Render(st.Tasks[0].ID))
			return nil
		},
	}
}

func newTasksDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			store.Dispatch(engine.TaskDone{ID: args[0]})
			fmt.Fprintf(cmd.OutOrStdout(), "%s done\n", ui.Good.Render("✔"))
			return nil
		},
	}
}
