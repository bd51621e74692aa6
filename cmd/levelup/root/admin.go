package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"levelup/internal/config"
	"levelup/internal/engine"
	"levelup/internal/storage"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "admin",
		Short:  "Admin tooling (requires LEVELUP_ADMIN=true)",
		Hidden: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.Admin {
				return errors.New("admin commands need LEVELUP_ADMIN=true")
			}
			return nil
		},
	}
	cmd.AddCommand(newAdminSetNowCmd(), newAdminClearNowCmd(), newAdminLevelUpCmd())
	return cmd
}

func newAdminSetNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-now <rfc3339>",
		Short: "Pin the engine clock to a fixed timestamp",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("a timestamp is required")
			}
			if _, err := time.Parse(time.RFC3339, args[0]); err != nil {
				return fmt.Errorf("timestamp must be RFC3339 (e.g. 2026-08-29T08:00:00Z): %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
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

			if err := storage.NewSettingsRepo(db).Set(ctx, storage.ClockOverrideKey, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "clock pinned to %s\n", args[0])
			return nil
		},
	}
}

func newAdminClearNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-now",
		Short: "Restore the real clock",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			if err := storage.NewSettingsRepo(db).Delete(ctx, storage.ClockOverrideKey); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "clock override cleared")
			return nil
		},
	}
}

func newAdminLevelUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "level-up",
		Short: "Grant exactly the XP needed for the next level",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, cleanup, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res := store.Dispatch(engine.DevLevelUp{})
			printRewards(cmd.OutOrStdout(), res)
			fmt.Fprintf(cmd.OutOrStdout(), "now level %d\n", store.State().Progress.Level)
			return nil
		},
	}
}
