package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"levelup/internal/config"
	"levelup/internal/storage"
)

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe the local state and start from scratch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("this deletes all local progress; re-run with --yes to confirm")
			}
			ctx := context.Background()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, closeDB, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := storage.NewStateRepo(db).Delete(ctx, storage.LocalUserID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "local state wiped; the next command starts fresh")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	return cmd
}
