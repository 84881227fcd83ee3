// Package auth provides user accounts and JWT-based authentication.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrUserNotFound is returned when a username does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username is already taken")
)

// User is an account row. The password hash never leaves this package.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// UserStore defines the interface for user persistence.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (*User, error)
	ByUsername(ctx context.Context, username string) (*User, error)
}

// PostgresUserStore implements UserStore on PostgreSQL.
type PostgresUserStore struct {
	db *sqlx.DB
}

// NewPostgresUserStore creates a new PostgresUserStore.
func NewPostgresUserStore(db *sqlx.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// Create inserts a new user, returning ErrUsernameTaken on a duplicate
// username.
func (s *PostgresUserStore) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u,
		"INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id, username, password_hash, created_at",
		username, passwordHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

// ByUsername looks up a user, returning ErrUserNotFound if absent.
func (s *PostgresUserStore) ByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = $1",
		username,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &u, nil
}
