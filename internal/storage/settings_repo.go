package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ClockOverrideKey stores the admin-only frozen "now" used to preview day
// rollovers. Absent means wall clock.
const ClockOverrideKey = "admin_now"

type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the stored value, or "" when the key is absent.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("settings get: %w", err)
	}
	return value, nil
}

func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("settings set: %w", err)
	}
	return nil
}

func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("settings delete: %w", err)
	}
	return nil
}

// ClockOverride parses the stored override timestamp. ok is false when no
// valid override is set.
func (r *SettingsRepo) ClockOverride(ctx context.Context) (time.Time, bool) {
	raw, err := r.Get(ctx, ClockOverrideKey)
	if err != nil || raw == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(time.RFC3339, raw, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
