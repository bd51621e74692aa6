package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// LocalUserID keys the single-user state of the local CLI.
const LocalUserID = "local"

// StateRepo persists the per-user state blob. The engine's state shape stays
// opaque here: bytes in, bytes out.
type StateRepo struct {
	db *sql.DB
}

func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

// Load returns the stored blob, or nil when the user has none yet.
func (r *StateRepo) Load(ctx context.Context, userID string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx, `SELECT data FROM states WHERE user_id = ?`, userID)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("state load: %w", err)
	}
	return data, nil
}

func (r *StateRepo) Save(ctx context.Context, userID string, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO states (user_id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, userID, data)
	if err != nil {
		return fmt.Errorf("state save: %w", err)
	}
	return nil
}

func (r *StateRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM states WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("state delete: %w", err)
	}
	return nil
}
