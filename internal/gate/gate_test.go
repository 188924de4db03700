package gate_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oversea-labs/compass/internal/auth"
	"github.com/oversea-labs/compass/internal/gate"
	_ "github.com/oversea-labs/compass/testing"
)

// stubParser resolves fixed token strings to claims.
type stubParser struct {
	tokens map[string]*auth.TokenClaims
}

func (p *stubParser) Parse(token string) (*auth.TokenClaims, error) {
	if claims, ok := p.tokens[token]; ok {
		return claims, nil
	}
	return nil, auth.ErrInvalidToken
}

func newTestGate() *gate.Gate {
	return gate.New(&stubParser{tokens: map[string]*auth.TokenClaims{
		"user-token":  {UserID: "u1", Email: "user@example.com", Role: auth.RoleUser},
		"admin-token": {UserID: "u2", Email: "admin@example.com", Role: auth.RoleAdmin},
	}})
}

func TestGateDecisionTable(t *testing.T) {
	cases := []struct {
		name     string
		method   string
		path     string
		token    string // "" for anonymous
		redirect string // "" means allow
	}{
		{name: "profile anonymous", method: "GET", path: "/profile", redirect: "/login"},
		{name: "profile user", method: "GET", path: "/profile", token: "user-token"},
		{name: "profile subpage user", method: "GET", path: "/profile/settings", token: "user-token"},
		{name: "profile admin", method: "GET", path: "/profile", token: "admin-token", redirect: "/dashboard"},

		{name: "dashboard anonymous", method: "GET", path: "/dashboard", redirect: "/login"},
		{name: "dashboard user", method: "GET", path: "/dashboard", token: "user-token", redirect: "/profile"},
		{name: "dashboard admin", method: "GET", path: "/dashboard", token: "admin-token"},

		{name: "login anonymous", method: "GET", path: "/login"},
		{name: "login user", method: "GET", path: "/login", token: "user-token", redirect: "/profile"},
		{name: "login admin", method: "GET", path: "/login", token: "admin-token", redirect: "/dashboard"},
		{name: "signup anonymous", method: "GET", path: "/signup"},
		{name: "signup user", method: "GET", path: "/signup", token: "user-token", redirect: "/profile"},

		{name: "published blogs anonymous", method: "GET", path: "/api/routes/blogs/published"},
		{name: "published blog by slug anonymous", method: "GET", path: "/api/routes/blogs/published/study-in-canada"},
		{name: "active courses anonymous", method: "GET", path: "/api/routes/courses/active"},
		{name: "public gallery anonymous", method: "GET", path: "/api/routes/gallery/public"},
		{name: "auth endpoint anonymous", method: "POST", path: "/api/routes/auth"},
		{name: "contact post anonymous", method: "POST", path: "/api/routes/contact"},
		{name: "subscribers post anonymous", method: "POST", path: "/api/routes/subscribers"},

		{name: "blogs list anonymous", method: "GET", path: "/api/routes/blogs", redirect: "/login"},
		{name: "blogs list user", method: "GET", path: "/api/routes/blogs", token: "user-token", redirect: "/login"},
		{name: "blogs list admin", method: "GET", path: "/api/routes/blogs", token: "admin-token"},
		{name: "contact list anonymous", method: "GET", path: "/api/routes/contact", redirect: "/login"},
		{name: "subscribers list user", method: "GET", path: "/api/routes/subscribers", token: "user-token", redirect: "/login"},
		{name: "blog delete user", method: "DELETE", path: "/api/routes/blogs/abc123", token: "user-token", redirect: "/login"},
		{name: "blog delete admin", method: "DELETE", path: "/api/routes/blogs/abc123", token: "admin-token"},

		{name: "home anonymous", method: "GET", path: "/"},
		{name: "unmatched path user", method: "GET", path: "/about", token: "user-token"},

		{name: "forged token counts as anonymous", method: "GET", path: "/dashboard", token: "forged", redirect: "/login"},
	}

	g := newTestGate()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled := false
			handler := g.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: tc.token})
			}
			res := httptest.NewRecorder()
			handler.ServeHTTP(res, req)

			if tc.redirect == "" {
				require.True(t, nextCalled, "expected passthrough")
				assert.Equal(t, http.StatusOK, res.Code)
			} else {
				require.False(t, nextCalled, "expected redirect, handler was reached")
				require.Equal(t, http.StatusSeeOther, res.Code)
				assert.Equal(t, tc.redirect, res.Header().Get("Location"))
			}
		})
	}
}

func TestGateIgnoresUserSnapshotCookie(t *testing.T) {
	// A client-forged role in the unsigned snapshot cookie must not grant
	// access; only the verified token counts.
	g := newTestGate()
	nextCalled := false
	handler := g.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/routes/blogs", nil)
	req.AddCookie(&http.Cookie{Name: auth.UserCookie, Value: `%7B%22role%22%3A%22admin%22%7D`})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	require.False(t, nextCalled)
	require.Equal(t, "/login", res.Header().Get("Location"))
}
