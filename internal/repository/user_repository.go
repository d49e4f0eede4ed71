package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Credentials is the stored login material for a principal.
type Credentials struct {
	Username     string
	PasswordHash string
}

// UserRepository reads login credentials for the auth service.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var errUserNotFound = errors.New("user not found")

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*Credentials, error) {
	query := `SELECT username, password_hash FROM users WHERE username = $1`
	var creds Credentials
	err := r.db.QueryRowContext(ctx, query, username).Scan(&creds.Username, &creds.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &creds, nil
}
