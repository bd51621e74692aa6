// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"levelup/internal/storage"
)

type Config struct {
	// DBPath is the local SQLite cache, the source of truth for loads.
	DBPath string `env:"LEVELUP_DB"`

	// Addr is the sync server listen address.
	Addr string `env:"LEVELUP_ADDR" envDefault:":4000"`

	// JWTSecret signs API tokens. Required by `levelup serve`.
	JWTSecret string `env:"LEVELUP_JWT_SECRET"`

	// RemoteURL enables debounced best-effort sync of local state to a
	// remote levelup server. Empty disables sync.
	RemoteURL   string `env:"LEVELUP_REMOTE_URL"`
	RemoteToken string `env:"LEVELUP_REMOTE_TOKEN"`

	// SyncDebounce is the quiet period that coalesces rapid-fire saves
	// into one remote call.
	SyncDebounce time.Duration `env:"LEVELUP_SYNC_DEBOUNCE" envDefault:"500ms"`

	// Admin enables the clock override commands and makes the CLI honor a
	// persisted override timestamp.
	Admin bool `env:"LEVELUP_ADMIN"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		path, err := storage.DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = path
	}
	return cfg, nil
}
