package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newReviveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revive",
		Short: "Start over after defeat: level 1, full life, progress reset",
		Long:  "Revive resets level, XP, tokens and achievements and restores full life. History, goal targets, tasks and training plans are kept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			store.Dispatch(engine.Revive{})
			st := store.State()
			fmt.Fprintf(cmd.OutOrStdout(), "%s revived at level %d with %d life\n", ui.IconHeart, st.Progress.Level, st.Life.Current)
			return nil
		},
	}
}
