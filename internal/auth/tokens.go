package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the fixed session token lifetime.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenClaims carries the identity embedded in a session token.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

// sessionClaims is the internal claims type used for JWT signing and parsing.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenIssuer mints and parses HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer. A non-positive ttl falls back to
// DefaultTokenTTL.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock overrides the issuer clock. Used by tests.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}

// TTL reports the configured token lifetime.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue signs a session token for the given user.
func (t *TokenIssuer) Issue(user *User) (string, error) {
	now := t.now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Email: user.Email,
		Role:  user.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies signature and expiry and returns the embedded claims.
// Any failure collapses to ErrInvalidToken: callers must not leak whether
// a token was forged, malformed or merely expired.
func (t *TokenIssuer) Parse(token string) (*TokenClaims, error) {
	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if parsed.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &TokenClaims{UserID: parsed.Subject, Email: parsed.Email, Role: parsed.Role}, nil
}
