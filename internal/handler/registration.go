package handler

import (
	"net/http"

	"github.com/gospives/platform/internal/service"
)

// RegistrationHandler handles the three wizard step endpoints.
type RegistrationHandler struct {
	regSvc *service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(regSvc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc}
}

// Step1 handles POST /api/registration/step1. It creates the record.
func (h *RegistrationHandler) Step1(w http.ResponseWriter, r *http.Request) {
	var input service.BeginInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid request body",
		})
		return
	}

	id, err := h.regSvc.Begin(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]string{
		"id":      id.String(),
		"message": "registration started",
	})
}

// Step3 handles POST /api/registration/step3. It stores the selected positions.
func (h *RegistrationHandler) Step3(w http.ResponseWriter, r *http.Request) {
	var input service.SetPositionsInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid request body",
		})
		return
	}

	id, err := h.regSvc.SetPositions(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]string{
		"id":      id.String(),
		"message": "positions saved",
	})
}

// Step4 handles POST /api/registration/step4. It attaches media and completes
// the profile.
func (h *RegistrationHandler) Step4(w http.ResponseWriter, r *http.Request) {
	var input service.SetMediaInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid request body",
		})
		return
	}

	reg, err := h.regSvc.SetMedia(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{
		"id":               reg.ID.String(),
		"uploadedImageUrl": reg.UploadedImageURL,
		"message":          "registration completed",
	})
}
