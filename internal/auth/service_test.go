package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oversea-labs/compass/internal/auth"
	"github.com/oversea-labs/compass/internal/platform/httpx"
	_ "github.com/oversea-labs/compass/testing"
)

type memoryRepo struct {
	users  map[string]*auth.User // keyed by id
	nextID int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*auth.User), nextID: 1}
}

func (r *memoryRepo) Create(ctx context.Context, user *auth.User) (string, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return "", auth.ErrEmailTaken
		}
	}
	id := fmt.Sprintf("u%d", r.nextID)
	r.nextID++
	stored := *user
	stored.ID = id
	r.users[id] = &stored
	return id, nil
}

func (r *memoryRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func newTestService(repo auth.Repository) *auth.Service {
	return auth.NewService(repo, auth.NewTokenIssuer("test-secret", 0))
}

func TestSignupIssuesVerifiableToken(t *testing.T) {
	repo := newMemoryRepo()
	service := newTestService(repo)

	token, user, err := service.Signup(context.Background(), "amit@example.com", "hunter2secret", "Amit")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, auth.RoleUser, user.Role)
	require.Equal(t, "amit@example.com", user.Email)
	require.NotEmpty(t, user.ID)

	identity, err := service.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, identity.ID)
	require.Equal(t, user.Email, identity.Email)
	require.Equal(t, auth.RoleUser, identity.Role)
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newMemoryRepo()
	service := newTestService(repo)

	_, _, err := service.Signup(context.Background(), "amit@example.com", "hunter2secret", "Amit")
	require.NoError(t, err)

	_, _, err = service.Signup(context.Background(), "amit@example.com", "otherpassword", "Imposter")
	require.ErrorIs(t, err, auth.ErrEmailTaken)
	require.ErrorIs(t, err, httpx.ErrConflict)
	require.Len(t, repo.users, 1)
}

func TestLoginReturnsStoredRole(t *testing.T) {
	repo := newMemoryRepo()
	service := newTestService(repo)

	_, user, err := service.Signup(context.Background(), "admin@example.com", "hunter2secret", "Admin")
	require.NoError(t, err)
	repo.users[user.ID].Role = auth.RoleAdmin

	token, loggedIn, err := service.Login(context.Background(), "admin@example.com", "hunter2secret")
	require.NoError(t, err)
	require.Equal(t, auth.RoleAdmin, loggedIn.Role)

	identity, err := service.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, auth.RoleAdmin, identity.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMemoryRepo()
	service := newTestService(repo)

	_, _, err := service.Signup(context.Background(), "amit@example.com", "hunter2secret", "Amit")
	require.NoError(t, err)

	_, _, err = service.Login(context.Background(), "amit@example.com", "wrongpassword")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	service := newTestService(newMemoryRepo())

	_, _, err := service.Login(context.Background(), "ghost@example.com", "whatever")
	require.ErrorIs(t, err, auth.ErrUserNotFound)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := newMemoryRepo()
	service := newTestService(repo)

	_, user, err := service.Signup(context.Background(), "amit@example.com", "hunter2secret", "Amit")
	require.NoError(t, err)
	repo.users[user.ID].Status = "suspended"

	_, _, err = service.Login(context.Background(), "amit@example.com", "hunter2secret")
	require.ErrorIs(t, err, auth.ErrInactiveAccount)
	require.ErrorIs(t, err, httpx.ErrForbidden)
}

func TestVerifyTokenFailsAfterDeactivation(t *testing.T) {
	repo := newMemoryRepo()
	service := newTestService(repo)

	token, user, err := service.Signup(context.Background(), "amit@example.com", "hunter2secret", "Amit")
	require.NoError(t, err)

	_, err = service.VerifyToken(context.Background(), token)
	require.NoError(t, err)

	// The signature is still valid, but the account no longer is.
	repo.users[user.ID].Status = "suspended"
	_, err = service.VerifyToken(context.Background(), token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyTokenGarbage(t *testing.T) {
	service := newTestService(newMemoryRepo())

	_, err := service.VerifyToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
	require.True(t, errors.Is(err, httpx.ErrUnauthorized))
}
