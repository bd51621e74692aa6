package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
	"levelup/internal/ui"
)

func newSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip",
		Short: "Spend a token to complete today's mission",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res := store.Dispatch(engine.Skip{})
			if res.Failed() {
				return declineErr(res.Err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s day skipped, streak protected (%d tokens left)\n", ui.IconToken, store.State().Tokens)
			printRewards(cmd.OutOrStdout(), res)
			return nil
		},
	}
}
