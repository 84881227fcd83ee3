package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUserStore is an in-memory UserStore for tests.
type memUserStore struct {
	users  map[string]*User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*User{}}
}

func (s *memUserStore) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	if _, ok := s.users[username]; ok {
		return nil, ErrUsernameTaken
	}
	s.nextID++
	u := &User{ID: s.nextID, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.users[username] = u
	return u, nil
}

func (s *memUserStore) ByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func newTestService() *Service {
	return NewService(newMemUserStore(), NewTokenService("test-secret", time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	token, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	token, err = svc.Login(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	t.Parallel()

	_, err := newTestService().Login(context.Background(), "nobody", "pw")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
