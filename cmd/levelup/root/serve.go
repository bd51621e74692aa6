package root

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"levelup/internal/config"
	"levelup/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the sync server (accounts + remote state)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("LEVELUP_JWT_SECRET is required")
			}

			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx := context.Background()
			db, closeDB, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			srv, err := server.New(server.Config{
				Addr:      cfg.Addr,
				JWTSecret: cfg.JWTSecret,
				DB:        db,
				Logger:    log,
			})
			if err != nil {
				return err
			}

			errc := make(chan error, 1)
			go func() {
				errc <- srv.Start()
			}()
			log.Info("listening", zap.String("addr", cfg.Addr))

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errc:
				return err
			case <-stop:
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
