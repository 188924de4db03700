package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oversea-labs/compass/internal/auth"
	_ "github.com/oversea-labs/compass/testing"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret-one", time.Hour)
	user := &auth.User{ID: "u1", Email: "amit@example.com", Role: auth.RoleAdmin}

	token, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "amit@example.com", claims.Email)
	require.Equal(t, auth.RoleAdmin, claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret-one", time.Hour)
	other := auth.NewTokenIssuer("secret-two", time.Hour)

	token, err := issuer.Issue(&auth.User{ID: "u1", Email: "a@b.c", Role: auth.RoleUser})
	require.NoError(t, err)

	_, err = other.Parse(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenExpiry(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	issuer := auth.NewTokenIssuer("secret-one", 0).WithClock(func() time.Time { return clock })

	token, err := issuer.Issue(&auth.User{ID: "u1", Email: "a@b.c", Role: auth.RoleUser})
	require.NoError(t, err)

	// Default lifetime is 7 days; just before the cutoff the token parses.
	clock = base.Add(auth.DefaultTokenTTL - time.Minute)
	_, err = issuer.Parse(token)
	require.NoError(t, err)

	clock = base.Add(auth.DefaultTokenTTL + time.Minute)
	_, err = issuer.Parse(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}
