// Package auth owns user records, credential checks and session tokens.
package auth

import (
	"fmt"
	"time"

	"github.com/oversea-labs/compass/internal/platform/httpx"
)

// Roles assignable to a user. Signup always produces RoleUser; RoleAdmin is
// granted out of band.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// StatusActive is the only status that may authenticate.
const StatusActive = "active"

// User is the persistent account record.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the view of a user that crosses the API boundary. The
// password hash never leaves the package.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Public returns the exposable view of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// Identity is the normalized result of verifying a session token.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// Domain errors. Each wraps a httpx sentinel so handlers map them to
// distinct status codes instead of a catch-all 401.
var (
	ErrEmailTaken         = fmt.Errorf("%w: email is already registered", httpx.ErrConflict)
	ErrUserNotFound       = fmt.Errorf("%w: no account for this email", httpx.ErrNotFound)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", httpx.ErrUnauthorized)
	ErrInactiveAccount    = fmt.Errorf("%w: account is not active", httpx.ErrForbidden)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", httpx.ErrUnauthorized)
)
