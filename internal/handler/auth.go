package handler

import (
	"net/http"
	"time"

	"github.com/gospives/platform/internal/auth"
	"github.com/gospives/platform/internal/service"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	authSvc      *service.AuthService
	cookieSecure bool
	sessionTTL   time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc *service.AuthService, cookieSecure bool, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cookieSecure: cookieSecure, sessionTTL: sessionTTL}
}

// Login handles POST /api/auth/login. On success the token is both returned
// in the body and set as the session cookie, so browser pages and API
// clients authenticate the same way.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid request body",
		})
		return
	}

	result, err := h.authSvc.Login(r.Context(), input, ClientIP(r))
	if err != nil {
		RespondError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	RespondJSON(w, http.StatusOK, result)
}

// Logout handles POST /api/auth/logout by expiring the session cookie. The
// token itself stays valid until expiry; there is no server-side revocation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	RespondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
