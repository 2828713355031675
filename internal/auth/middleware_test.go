package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gospives/platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticResolver returns a fixed identity for any snapshot, or echoes the
// snapshot back when fresh is nil (the record-gone fallback).
type staticResolver struct {
	fresh *domain.Identity
}

func (r *staticResolver) Resolve(_ context.Context, snapshot domain.Identity) domain.Identity {
	if r.fresh != nil {
		return *r.fresh
	}
	return snapshot
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	issuer := newTestIssuer()
	identity := testIdentity()
	token, err := issuer.Issue(identity)
	require.NoError(t, err)

	mw := Authenticate(issuer, &staticResolver{})

	t.Run("bearer token accepted", func(t *testing.T) {
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := IdentityFromContext(r.Context())
			require.NotNil(t, got)
			assert.Equal(t, identity.Email, got.Email)
			w.WriteHeader(http.StatusOK)
		}))

		r := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("session cookie accepted", func(t *testing.T) {
		handler := mw(okHandler())
		r := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		handler := mw(okHandler())
		r := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		handler := mw(okHandler())
		r := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		r.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("tampered token rejected", func(t *testing.T) {
		handler := mw(okHandler())
		r := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		r.Header.Set("Authorization", "Bearer "+token+"x")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("resolver refreshes identity", func(t *testing.T) {
		fresh := identity
		fresh.Club = "Updated FC"
		handler := Authenticate(issuer, &staticResolver{fresh: &fresh})(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got := IdentityFromContext(r.Context())
				require.NotNil(t, got)
				assert.Equal(t, "Updated FC", got.Club)
				w.WriteHeader(http.StatusOK)
			}))

		r := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	issuer := newTestIssuer()

	tokenFor := func(role string) string {
		id := testIdentity()
		id.Role = role
		token, err := issuer.Issue(id)
		require.NoError(t, err)
		return token
	}

	chain := func(roles ...string) http.Handler {
		return Authenticate(issuer, &staticResolver{})(RequireRole(roles...)(okHandler()))
	}

	t.Run("role satisfied", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		r.Header.Set("Authorization", "Bearer "+tokenFor(domain.RoleAdmin))
		w := httptest.NewRecorder()
		chain(domain.RoleAdmin).ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("insufficient role is forbidden not unauthorized", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		r.Header.Set("Authorization", "Bearer "+tokenFor(domain.RoleUser))
		w := httptest.NewRecorder()
		chain(domain.RoleAdmin).ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})

	t.Run("no auth context", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		w := httptest.NewRecorder()
		RequireRole(domain.RoleAdmin)(okHandler()).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPageGuard(t *testing.T) {
	issuer := newTestIssuer()
	guard := NewPageGuard(issuer, &staticResolver{})

	userToken := func(role string) string {
		id := testIdentity()
		id.Role = role
		token, err := issuer.Issue(id)
		require.NoError(t, err)
		return token
	}

	t.Run("unauthenticated redirects to login with callback", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/dashboard/users", nil)
		w := httptest.NewRecorder()
		guard.Protect(okHandler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?callbackUrl=%2Fdashboard%2Fusers", w.Header().Get("Location"))
	})

	t.Run("authenticated passes through", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: userToken(domain.RoleUser)})
		w := httptest.NewRecorder()
		guard.Protect(okHandler()).ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("expired session treated as unauthenticated", func(t *testing.T) {
		shortIssuer := NewTokenIssuer("test-secret-key", -time.Minute)
		token, err := shortIssuer.Issue(testIdentity())
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		w := httptest.NewRecorder()
		guard.Protect(okHandler()).ServeHTTP(w, r)
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("non-admin on admin page lands on dashboard", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/dashboard/users", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: userToken(domain.RoleUser)})
		w := httptest.NewRecorder()
		guard.ProtectAdmin(okHandler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	})

	t.Run("admin on admin page proceeds", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/dashboard/users", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: userToken(domain.RoleAdmin)})
		w := httptest.NewRecorder()
		guard.ProtectAdmin(okHandler()).ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("authenticated user bounced off login page", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/login", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: userToken(domain.RoleUser)})
		w := httptest.NewRecorder()
		guard.RedirectAuthenticated(okHandler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	})

	t.Run("anonymous user reaches login page", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/login", nil)
		w := httptest.NewRecorder()
		guard.RedirectAuthenticated(okHandler()).ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
