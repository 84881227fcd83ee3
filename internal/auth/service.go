package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service registers users and exchanges credentials for tokens.
type Service struct {
	users  UserStore
	tokens *TokenService
}

// NewService creates an auth Service.
func NewService(users UserStore, tokens *TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a user with a bcrypt-hashed password and returns a signed
// token for the new account.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		return "", err
	}

	return s.tokens.Generate(user.Username)
}

// Login verifies the credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(user.Username)
}
