package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DoyleJ11/user-manager/internal/middleware"
	"github.com/DoyleJ11/user-manager/internal/permissions"
	"github.com/DoyleJ11/user-manager/internal/utils"
)

// mockValidator implements middleware.TokenValidator without any database
// dependency.
type mockValidator struct {
	session *utils.SessionData
	actor   *permissions.Actor
	err     error
	calls   int
}

func (m *mockValidator) Validate(ctx context.Context, token string) (*utils.SessionData, *permissions.Actor, error) {
	m.calls++
	return m.session, m.actor, m.err
}

// runGate wraps a 200-OK inner handler in the gate, optionally setting the
// session cookie, and returns the recorder plus whatever actor the inner
// handler observed.
func runGate(t *testing.T, v middleware.TokenValidator, cookieValue string) (*httptest.ResponseRecorder, *permissions.Actor) {
	t.Helper()

	var seen *permissions.Actor
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.SessionGate(v, false)(inner)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen
}

func TestSessionGate_NoCookie(t *testing.T) {
	v := &mockValidator{}
	rec, actor := runGate(t, v, "")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if actor != nil {
		t.Errorf("expected anonymous request, got actor %+v", actor)
	}
	if v.calls != 0 {
		t.Errorf("expected no validation without a cookie, got %d calls", v.calls)
	}
}

func TestSessionGate_StaleCookieCleared(t *testing.T) {
	v := &mockValidator{} // nil session, nil error: unknown or expired token
	rec, actor := runGate(t, v, "stale-token")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if actor != nil {
		t.Errorf("expected anonymous request, got actor %+v", actor)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.SessionCookieName {
		t.Fatalf("expected a delete for %s, got %v", middleware.SessionCookieName, cookies)
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("expected expired cookie, got MaxAge=%d", cookies[0].MaxAge)
	}
}

func TestSessionGate_ValidatorErrorDegradesToAnonymous(t *testing.T) {
	v := &mockValidator{err: errors.New("db down")}
	rec, actor := runGate(t, v, "some-token")

	if rec.Code != http.StatusOK {
		t.Errorf("validation errors must not fail the request; got %d", rec.Code)
	}
	if actor != nil {
		t.Errorf("expected anonymous request, got actor %+v", actor)
	}
	// The cookie must survive a transient failure.
	if n := len(rec.Result().Cookies()); n != 0 {
		t.Errorf("expected no cookie writes, got %d", n)
	}
}

func TestSessionGate_ValidSessionRefreshesCookie(t *testing.T) {
	expiry := time.Now().Add(20 * 24 * time.Hour).Truncate(time.Second)
	v := &mockValidator{
		session: &utils.SessionData{SessionID: "sid", UserID: "u1", ExpiresAt: expiry},
		actor:   &permissions.Actor{ID: "u1", Username: "maria", Role: permissions.RoleUser},
	}
	rec, actor := runGate(t, v, "raw-token")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if actor == nil || actor.ID != "u1" {
		t.Fatalf("expected actor u1 in context, got %+v", actor)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Value != "raw-token" {
		t.Errorf("gate must re-set the original token, got %q", c.Value)
	}
	if !c.Expires.Equal(expiry) {
		t.Errorf("cookie expiry %v, want session expiry %v", c.Expires, expiry)
	}
	if !c.HttpOnly {
		t.Error("session cookie must be http-only")
	}
}

func TestRequireAuth(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireAuth(inner)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", rec.Code)
	}

	actor := &permissions.Actor{ID: "u1", Role: permissions.RoleUser}
	ctx := utils.WithActor(req.Context(), actor, &utils.SessionData{SessionID: "sid"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated: expected 200, got %d", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireAdmin(inner)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", rec.Code)
	}

	user := &permissions.Actor{ID: "u1", Role: permissions.RoleUser}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(utils.WithActor(req.Context(), user, nil)))
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin: expected 403, got %d", rec.Code)
	}

	admin := &permissions.Actor{ID: "a1", Role: permissions.RoleAdmin}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(utils.WithActor(req.Context(), admin, nil)))
	if rec.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", rec.Code)
	}
}
