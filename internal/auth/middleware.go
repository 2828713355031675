package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gospives/platform/internal/domain"
)

// SessionCookie is the cookie carrying the session token on page flows. API
// clients send the same token as an Authorization bearer header.
const SessionCookie = "session_token"

type contextKey string

const identityKey contextKey = "auth_identity"

// IdentityResolver re-reads the backing record for a token's identity so
// protected requests see out-of-band profile edits. Implementations fall back
// to the snapshot themselves when the record is gone.
type IdentityResolver interface {
	Resolve(ctx context.Context, snapshot domain.Identity) domain.Identity
}

// IdentityFromContext extracts the resolved identity from request context.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(identityKey).(*domain.Identity)
	return id
}

// Authenticate returns middleware that validates session tokens on API routes.
// A single resolution failure means unauthenticated; there is no retry.
func Authenticate(issuer *TokenIssuer, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := resolveRequest(r, issuer, resolver)
			if err != nil {
				http.Error(w, `{"code":"UNAUTHORIZED","message":"`+err.Error()+`"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns middleware that checks the resolved identity's role.
// This is an authorization failure, distinct from the unauthenticated case.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if identity == nil {
				http.Error(w, `{"code":"UNAUTHORIZED","message":"no auth context"}`, http.StatusUnauthorized)
				return
			}
			if !roleSet[identity.Role] {
				http.Error(w, `{"code":"FORBIDDEN","message":"insufficient role"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PageGuard gates browser-style routes with the redirect state machine:
// unauthenticated requests to protected pages bounce to login with the target
// preserved, authenticated requests to the auth entry pages bounce away, and
// authenticated-but-unprivileged requests to admin pages land on the plain
// dashboard.
type PageGuard struct {
	issuer   *TokenIssuer
	resolver IdentityResolver

	LoginPath   string
	LandingPath string
}

// NewPageGuard creates a page guard with the default login/landing paths.
func NewPageGuard(issuer *TokenIssuer, resolver IdentityResolver) *PageGuard {
	return &PageGuard{
		issuer:      issuer,
		resolver:    resolver,
		LoginPath:   "/login",
		LandingPath: "/dashboard",
	}
}

// Protect requires an authenticated session, redirecting to login otherwise.
func (g *PageGuard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := resolveRequest(r, g.issuer, g.resolver)
		if err != nil {
			loginURL := g.LoginPath + "?callbackUrl=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, loginURL, http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ProtectAdmin requires an authenticated admin. A valid session without the
// admin role is redirected to the plain landing page, not to login.
func (g *PageGuard) ProtectAdmin(next http.Handler) http.Handler {
	return g.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if identity == nil || identity.Role != domain.RoleAdmin {
			http.Redirect(w, r, g.LandingPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// RedirectAuthenticated sends already-authenticated users away from the login
// and register pages, preventing re-login loops.
func (g *PageGuard) RedirectAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := resolveRequest(r, g.issuer, g.resolver); err == nil {
			http.Redirect(w, r, g.LandingPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func resolveRequest(r *http.Request, issuer *TokenIssuer, resolver IdentityResolver) (*domain.Identity, error) {
	token, err := extractToken(r)
	if err != nil {
		return nil, err
	}
	claims, err := issuer.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("invalid session")
	}

	identity := claims.Identity
	if resolver != nil {
		identity = resolver.Resolve(r.Context(), identity)
	}
	return &identity, nil
}

func extractToken(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", fmt.Errorf("invalid Authorization format")
		}
		return parts[1], nil
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", fmt.Errorf("missing session token")
}
