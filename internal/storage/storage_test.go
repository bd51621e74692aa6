package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestStateRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepo(newTestDB(t))

	got, err := repo.Load(ctx, LocalUserID)
	require.NoError(t, err)
	require.Nil(t, got, "missing state should load as nil, nil")

	require.NoError(t, repo.Save(ctx, LocalUserID, []byte(`{"schema":1}`)))
	got, err = repo.Load(ctx, LocalUserID)
	require.NoError(t, err)
	require.JSONEq(t, `{"schema":1}`, string(got))

	// Upsert overwrites.
	require.NoError(t, repo.Save(ctx, LocalUserID, []byte(`{"schema":1,"tokens":2}`)))
	got, err = repo.Load(ctx, LocalUserID)
	require.NoError(t, err)
	require.JSONEq(t, `{"schema":1,"tokens":2}`, string(got))

	require.NoError(t, repo.Delete(ctx, LocalUserID))
	got, err = repo.Load(ctx, LocalUserID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestUserRepoCreateWithStateIsAtomic(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepo(db)
	states := NewStateRepo(db)

	u := &User{ID: "u1", Email: "ana@example.com", Name: "Ana", PasswordHash: "x"}
	require.NoError(t, users.CreateWithState(ctx, u, []byte(`{"schema":1}`)))

	got, err := users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "u1", got.ID)

	blob, err := states.Load(ctx, "u1")
	require.NoError(t, err)
	require.JSONEq(t, `{"schema":1}`, string(blob))

	// Duplicate email: the whole transaction rolls back, no state row.
	dup := &User{ID: "u2", Email: "ana@example.com", Name: "Other", PasswordHash: "y"}
	require.Error(t, users.CreateWithState(ctx, dup, []byte(`{"schema":1}`)))
	blob, err = states.Load(ctx, "u2")
	require.NoError(t, err)
	require.Nil(t, blob)
}

func TestUserRepoMissingUser(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(newTestDB(t))

	got, err := users.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSettingsRepoClockOverride(t *testing.T) {
	ctx := context.Background()
	settings := NewSettingsRepo(newTestDB(t))

	_, ok := settings.ClockOverride(ctx)
	require.False(t, ok, "no override stored")

	require.NoError(t, settings.Set(ctx, ClockOverrideKey, "2026-03-10T08:00:00Z"))
	got, ok := settings.ClockOverride(ctx)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC).Unix(), got.Unix())

	// Garbage values read as no override.
	require.NoError(t, settings.Set(ctx, ClockOverrideKey, "yesterday-ish"))
	_, ok = settings.ClockOverride(ctx)
	require.False(t, ok)

	require.NoError(t, settings.Set(ctx, ClockOverrideKey, "2026-03-10T08:00:00Z"))
	require.NoError(t, settings.Delete(ctx, ClockOverrideKey))
	_, ok = settings.ClockOverride(ctx)
	require.False(t, ok)
}
