package auth

import (
	"context"
	"fmt"

	"github.com/surbhisaraf/customer-banking-service/internal/repository"
)

// CredentialStore looks up stored login material for a username.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*repository.Credentials, error)
}

// Service handles login and token refresh. Neither mutates application
// state, so there is no command side here.
type Service struct {
	users CredentialStore
}

func NewService(users CredentialStore) *Service {
	return &Service{users: users}
}

// Login verifies credentials and returns a signed token. Unknown user and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	creds, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	if !CheckPassword(password, creds.PasswordHash) {
		return "", fmt.Errorf("invalid credentials")
	}
	return GenerateToken(creds.Username)
}

// RefreshToken re-issues a token for a still-valid one.
func (s *Service) RefreshToken(ctx context.Context, token string) (string, error) {
	claims, err := ParseToken(token)
	if err != nil {
		return "", fmt.Errorf("invalid token")
	}
	return GenerateToken(claims.Username)
}
