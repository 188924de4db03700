// Package gate implements the request-level access gate mounted in front of
// every page and API handler.
package gate

import (
	"net/http"
	"strings"

	"github.com/oversea-labs/compass/internal/auth"
)

// TokenParser verifies a session token and returns its claims. The gate
// stays stateless: verification is signature and expiry only, with no
// store round-trip.
type TokenParser interface {
	Parse(token string) (*auth.TokenClaims, error)
}

// Gate decides allow/redirect for each inbound request before any handler
// executes. The role is taken from the cryptographically verified token
// cookie, never from the client-writable user snapshot cookie.
type Gate struct {
	parser TokenParser
}

// New constructs a Gate.
func New(parser TokenParser) *Gate {
	return &Gate{parser: parser}
}

// Handler returns the gate as chi-compatible middleware.
func (g *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, authed := g.identity(r)
		if target, redirect := decide(r.Method, r.URL.Path, role, authed); redirect {
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Gate) identity(r *http.Request) (role string, authed bool) {
	cookie, err := r.Cookie(auth.TokenCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	claims, err := g.parser.Parse(cookie.Value)
	if err != nil {
		// Invalid or expired tokens count as no identity.
		return "", false
	}
	return claims.Role, true
}

// Subpaths under /api that are reachable without authentication.
var publicAPISegments = map[string]struct{}{
	"published": {},
	"active":    {},
	"login":     {},
	"signup":    {},
	"logout":    {},
	"public":    {},
	"auth":      {},
}

// decide classifies (method, path, identity) into allow or redirect(target).
// The first matching prefix applies exclusively; unmatched paths pass
// through.
func decide(method, path, role string, authed bool) (string, bool) {
	switch {
	case strings.HasPrefix(path, "/profile"):
		if !authed {
			return "/login", true
		}
		if role == auth.RoleAdmin {
			return "/dashboard", true
		}
		return "", false

	case strings.HasPrefix(path, "/dashboard"):
		if !authed {
			return "/login", true
		}
		if role != auth.RoleAdmin {
			return "/profile", true
		}
		return "", false

	case strings.HasPrefix(path, "/login"), strings.HasPrefix(path, "/signup"):
		if !authed {
			return "", false
		}
		if role == auth.RoleAdmin {
			return "/dashboard", true
		}
		return "/profile", true

	case strings.HasPrefix(path, "/api/"):
		if isPublicAPI(method, path) {
			return "", false
		}
		if authed && role == auth.RoleAdmin {
			return "", false
		}
		return "/login", true
	}
	return "", false
}

func isPublicAPI(method, path string) bool {
	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		if _, ok := publicAPISegments[segment]; ok {
			return true
		}
		if method == http.MethodPost && (segment == "contact" || segment == "subscribers") {
			return true
		}
	}
	return false
}
