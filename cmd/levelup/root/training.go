package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

var trainingDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func validDay(day string) (string, error) {
	day = strings.ToLower(strings.TrimSpace(day))
	for _, d := range trainingDays {
		if d == day {
			return day, nil
		}
	}
	return "", fmt.Errorf("unknown day %q (monday..sunday)", day)
}

func newTrainingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "training",
		Short: "Weekly exercise plan",
	}
	cmd.AddCommand(newTrainingListCmd(), newTrainingAddCmd(), newTrainingDoneCmd(), newTrainingRemoveCmd())
	return cmd
}

func newTrainingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [day]",
		Short: "List the plan for one day or the whole week",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			days := trainingDays
			if len(args) == 1 {
				day, err := validDay(args[0])
				if err != nil {
					return err
				}
				days = []string{day}
			}

			st := store.State()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconLoop, "Training week"))
			for _, day := range days {
				items := st.Training[day]
				if len(items) == 0 && len(args) == 0 {
					continue
				}
				fmt.Fprintln(out, ui.H2.Render(day))
				if len(items) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(rest day)"))
					continue
				}
				for _, e := range items {
					fmt.Fprintf(out, "- %s (%s, done %d) %s\n", e.Name, e.Reps, e.Done, ui.Muted.Render(e.ID))
				}
			}
			return nil
		},
	}
}

func newTrainingAddCmd() *cobra.Command {
	var day, reps string
	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add an exercise to a day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return errors.New("exercise name is required")
			}
			d, err := validDay(day)
			if err != nil {
				return err
			}
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			store.Dispatch(engine.TrainingAdd{Day: d, Name: name, Reps: reps})
			fmt.Fprintf(cmd.OutOrStdout(), "added %s on %s\n", name, d)
			return nil
		},
	}
	cmd.Flags().StringVarP(&day, "day", "d", "monday", "weekday (monday..sunday)")
	cmd.Flags().StringVarP(&reps, "reps", "r", "3x10", "reps scheme, e.g. 3x12 or 3x30s")
	return cmd
}

func newTrainingDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <day> <id> <count>",
		Short: "Record completed sets for an exercise",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return errors.New("day, id and count are required")
			}
			if _, err := strconv.Atoi(args[2]); err != nil {
				return errors.New("count must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := validDay(args[0])
			if err != nil {
				return err
			}
			count, _ := strconv.Atoi(args[2])
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			store.Dispatch(engine.TrainingSetDone{Day: day, ID: args[1], Done: count})
			fmt.Fprintf(cmd.OutOrStdout(), "%s recorded\n", ui.Good.Render("✔"))
			return nil
		},
	}
}

func newTrainingRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <day> <id>",
		Short: "Remove an exercise from a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := validDay(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			store.Dispatch(engine.TrainingRemove{Day: day, ID: args[1]})
			fmt.Fprintln(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}
