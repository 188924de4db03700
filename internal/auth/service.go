package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oversea-labs/compass/internal/platform/httpx"
)

const bcryptCost = 10

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	tokens *TokenIssuer
	now    func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens, now: time.Now}
}

// Signup creates a new active user with the fixed "user" role and mints a
// session token for it.
func (s *Service) Signup(ctx context.Context, email, password, name string) (string, *PublicUser, error) {
	// Fast path only; the unique index catches concurrent signups.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("%w: hash password: %v", httpx.ErrStorage, err)
	}

	now := s.now().UTC()
	user := &User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         RoleUser,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}
	user.ID = id

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("%w: sign token: %v", httpx.ErrStorage, err)
	}
	return token, user.Public(), nil
}

// Login validates email/password credentials and mints a session token
// embedding the user's stored role.
func (s *Service) Login(ctx context.Context, email, password string) (string, *PublicUser, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.Status != StatusActive {
		return "", nil, ErrInactiveAccount
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("%w: sign token: %v", httpx.ErrStorage, err)
	}
	return token, user.Public(), nil
}

// VerifyToken checks signature and expiry, re-fetches the subject and
// re-checks its status. A token outlives a deactivation only until its
// next use.
func (s *Service) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if user.Status != StatusActive {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}, nil
}
