package root

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"levelup/internal/clock"
	"levelup/internal/config"
	"levelup/internal/engine"
	"levelup/internal/storage"
	"levelup/internal/syncer"
)

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, func(), error) {
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

// openStore assembles the whole local stack: config, SQLite, the optional
// admin clock override, the persisted snapshot and the sync persister.
func openStore(ctx context.Context) (*engine.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, closeDB, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	states := storage.NewStateRepo(db)

	var clk clock.Clock = clock.System{}
	if cfg.Admin {
		settings := storage.NewSettingsRepo(db)
		clk = clock.Override{
			Base: clk,
			Get: func() (time.Time, bool) {
				return settings.ClockOverride(context.Background())
			},
		}
	}

	blob, err := states.Load(ctx, storage.LocalUserID)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	var initial *engine.State
	if blob != nil {
		initial = engine.DecodeState(blob)
	}

	sync := syncer.New(states, syncer.Options{
		BaseURL:  cfg.RemoteURL,
		Token:    cfg.RemoteToken,
		Debounce: cfg.SyncDebounce,
	})

	store := engine.NewStore(storage.LocalUserID, initial, clk, sync)
	cleanup := func() {
		sync.Flush()
		closeDB()
	}
	return store, cleanup, nil
}

// declineErr turns a dispatch decline into a command error.
func declineErr(kind engine.ErrorKind) error {
	switch kind {
	case engine.ErrDead:
		return errors.New("you are defeated: run `levelup revive` to start over")
	case engine.ErrAlreadyDone:
		return errors.New("already done today")
	case engine.ErrAlreadyUsed:
		return errors.New("today is already skipped")
	case engine.ErrNotSet:
		return errors.New("goal has no target: set one with `levelup goals set`")
	case engine.ErrNoTokens:
		return errors.New("no skip tokens: level up to earn one")
	}
	return errors.New(string(kind))
}
