package root

import (
	"context"

	"github.com/spf13/cobra"

	"levelup/internal/tui"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Interactive full-screen dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			_, err = tui.NewProgram(store).Run()
			return err
		},
	}
}
