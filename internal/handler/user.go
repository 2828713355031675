package handler

import (
	"net/http"

	"github.com/gospives/platform/internal/auth"
	"github.com/gospives/platform/internal/domain"
	"github.com/gospives/platform/internal/service"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	regSvc *service.RegistrationService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(regSvc *service.RegistrationService) *UserHandler {
	return &UserHandler{regSvc: regSvc}
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		RespondError(w, domain.ErrUnauthorized("no identity in context"))
		return
	}
	RespondJSON(w, http.StatusOK, identity)
}

// UpdateSocials handles PATCH /api/users/me/socials.
func (h *UserHandler) UpdateSocials(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		RespondError(w, domain.ErrUnauthorized("no identity in context"))
		return
	}

	var socials domain.Socials
	if err := DecodeJSON(r, &socials); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid request body",
		})
		return
	}

	if err := h.regSvc.UpdateSocials(r.Context(), identity.Email, socials); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"message": "socials updated"})
}
