package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/DoyleJ11/user-manager/internal/permissions"
	"github.com/DoyleJ11/user-manager/internal/utils"
)

// TokenValidator resolves a raw cookie token to a session and actor. A nil
// session with a nil error means the token is unknown or expired.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*utils.SessionData, *permissions.Actor, error)
}

// SessionGate runs once per request, before anything else that cares about
// identity. Requests without a cookie pass through anonymous with no store
// access. A stale cookie is cleared; a valid one is re-set with the current
// (possibly renewed) expiry. Validation failures never fail the request.
func SessionGate(validator TokenValidator, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, actor, err := validator.Validate(r.Context(), cookie.Value)
			if err != nil {
				// Store trouble: degrade to anonymous, keep the cookie so the
				// user is not logged out by a transient failure.
				log.Printf("[gate] session validation: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			if session == nil {
				DeleteSessionCookie(w, secure)
				next.ServeHTTP(w, r)
				return
			}

			SetSessionCookie(w, cookie.Value, session.ExpiresAt, secure)
			ctx := utils.WithActor(r.Context(), actor, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests. It assumes SessionGate already ran.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if utils.GetActorFromContext(r.Context()) == nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := utils.GetActorFromContext(r.Context())
		if actor == nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		if !permissions.IsAdmin(actor) {
			http.Error(w, "Forbidden: admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CORSMiddleware echoes the origin back only if it is on the allow-list.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin") // important for caches
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods",
					"GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers",
					"Content-Type, Authorization")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
