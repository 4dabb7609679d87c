package middleware

import (
	"net/http"
	"time"
)

// SessionCookieName is the one cookie this application sets; the gate, login
// and logout all agree on it.
const SessionCookieName = "auth_session"

// SetSessionCookie writes the raw token with the session's expiry. Secure is
// off outside production so local HTTP development keeps working.
func SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		Expires:  expiresAt,
	})
}

// DeleteSessionCookie expires the cookie immediately.
func DeleteSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
