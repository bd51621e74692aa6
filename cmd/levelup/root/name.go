package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"levelup/internal/engine"
)

func newNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name <name...>",
		Short: "Set your display name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			store.Dispatch(engine.SetName{Name: strings.Join(args, " ")})
			fmt.Fprintf(cmd.OutOrStdout(), "hello, %s\n", store.State().User.Name)
			return nil
		},
	}
}
