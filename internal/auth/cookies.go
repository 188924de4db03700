package auth

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// Cookie names for the identity pair. TokenCookie carries the signed JWT
// and is HTTP-only; UserCookie carries a URL-encoded JSON snapshot for the
// frontend. The snapshot is a display convenience and is never consulted
// for authorization.
const (
	TokenCookie = "authToken"
	UserCookie  = "user"
)

const cookieMaxAge = 604800 // 7 days, matches the token lifetime

// SetSessionCookies writes the identity cookie pair. Both cookies share the
// same lifetime so they expire together.
func SetSessionCookies(w http.ResponseWriter, token string, user *PublicUser) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	snapshot, err := json.Marshal(user)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     UserCookie,
		Value:    url.QueryEscape(string(snapshot)),
		Path:     "/",
		MaxAge:   cookieMaxAge,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookies expires both cookies together.
func ClearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{TokenCookie, UserCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == TokenCookie,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
