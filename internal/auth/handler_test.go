package auth_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/oversea-labs/compass/internal/auth"
	"github.com/oversea-labs/compass/internal/platform/httpx"
	_ "github.com/oversea-labs/compass/testing"
)

func newAuthRouter(repo auth.Repository) http.Handler {
	handler := auth.NewHandler(slog.Default(), newTestService(repo))
	r := chi.NewRouter()
	r.Route("/api/routes", handler.MountRoutes)
	return r
}

func doAuth(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/routes/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func decodeEnvelope(t *testing.T, res *httptest.ResponseRecorder) httpx.Envelope {
	t.Helper()
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	return env
}

func TestAuthSignupSetsCookiePair(t *testing.T) {
	router := newAuthRouter(newMemoryRepo())

	res := doAuth(t, router, `{"email":"amit@example.com","password":"hunter2secret","name":"Amit","action":"signup"}`)
	require.Equal(t, http.StatusOK, res.Code)

	env := decodeEnvelope(t, res)
	require.Equal(t, http.StatusOK, env.StatusCode)
	require.Equal(t, "NO", env.ErrorCode)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "user", data["role"])
	require.NotContains(t, res.Body.String(), "password")

	cookies := res.Result().Cookies()
	require.Len(t, cookies, 2)
	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}

	tokenCookie := byName[auth.TokenCookie]
	require.NotNil(t, tokenCookie)
	require.True(t, tokenCookie.HttpOnly)
	require.True(t, tokenCookie.Secure)
	require.Equal(t, 604800, tokenCookie.MaxAge)
	require.Equal(t, "/", tokenCookie.Path)

	userCookie := byName[auth.UserCookie]
	require.NotNil(t, userCookie)
	require.False(t, userCookie.HttpOnly)
	require.Equal(t, 604800, userCookie.MaxAge)
}

func TestAuthSignupMissingName(t *testing.T) {
	router := newAuthRouter(newMemoryRepo())

	res := doAuth(t, router, `{"email":"amit@example.com","password":"hunter2secret","action":"signup"}`)
	require.Equal(t, http.StatusBadRequest, res.Code)
	require.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, res).ErrorCode)
}

func TestAuthMissingCredentials(t *testing.T) {
	router := newAuthRouter(newMemoryRepo())

	res := doAuth(t, router, `{"email":"amit@example.com"}`)
	require.Equal(t, http.StatusBadRequest, res.Code)

	res = doAuth(t, router, `{"password":"hunter2secret"}`)
	require.Equal(t, http.StatusBadRequest, res.Code)

	res = doAuth(t, router, `not json`)
	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestAuthDuplicateSignupConflicts(t *testing.T) {
	router := newAuthRouter(newMemoryRepo())

	res := doAuth(t, router, `{"email":"amit@example.com","password":"hunter2secret","name":"Amit","action":"signup"}`)
	require.Equal(t, http.StatusOK, res.Code)

	res = doAuth(t, router, `{"email":"amit@example.com","password":"hunter2secret","name":"Amit","action":"signup"}`)
	require.Equal(t, http.StatusConflict, res.Code)
	require.Equal(t, "CONFLICT", decodeEnvelope(t, res).ErrorCode)
}

func TestAuthLoginFailures(t *testing.T) {
	repo := newMemoryRepo()
	router := newAuthRouter(repo)

	res := doAuth(t, router, `{"email":"amit@example.com","password":"hunter2secret","name":"Amit","action":"signup"}`)
	require.Equal(t, http.StatusOK, res.Code)

	res = doAuth(t, router, `{"email":"amit@example.com","password":"wrongpassword"}`)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Equal(t, "AUTH_FAILED", decodeEnvelope(t, res).ErrorCode)

	res = doAuth(t, router, `{"email":"ghost@example.com","password":"whatever1"}`)
	require.Equal(t, http.StatusNotFound, res.Code)

	for _, u := range repo.users {
		u.Status = "suspended"
	}
	res = doAuth(t, router, `{"email":"amit@example.com","password":"hunter2secret"}`)
	require.Equal(t, http.StatusForbidden, res.Code)
}

func TestAuthLogoutClearsCookies(t *testing.T) {
	router := newAuthRouter(newMemoryRepo())

	req := httptest.NewRequest(http.MethodDelete, "/api/routes/auth", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	env := decodeEnvelope(t, res)
	require.Equal(t, "Logged out successfully", env.Message)

	cookies := res.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		require.Less(t, c.MaxAge, 0, "cookie %s should be expired", c.Name)
	}
}
