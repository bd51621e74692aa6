package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, is_admin)
		VALUES (?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.Name, u.PasswordHash, u.IsAdmin)
	if err != nil {
		return fmt.Errorf("user insert: %w", err)
	}
	return nil
}

// CreateWithState registers the user and seeds their state blob in one
// transaction, so a login immediately after register always finds a state.
func (r *UserRepo) CreateWithState(ctx context.Context, u *User, state []byte) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, email, name, password_hash, is_admin)
			VALUES (?, ?, ?, ?, ?)
		`, u.ID, u.Email, u.Name, u.PasswordHash, u.IsAdmin); err != nil {
			return fmt.Errorf("user insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO states (user_id, data) VALUES (?, ?)
		`, u.ID, state); err != nil {
			return fmt.Errorf("state seed: %w", err)
		}
		return nil
	})
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.get(ctx, `SELECT id, email, name, password_hash, is_admin, created_at FROM users WHERE email = ?`, email)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	return r.get(ctx, `SELECT id, email, name, password_hash, is_admin, created_at FROM users WHERE id = ?`, id)
}

func (r *UserRepo) get(ctx context.Context, query string, arg any) (*User, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	return &u, nil
}
