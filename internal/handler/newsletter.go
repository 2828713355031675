package handler

import (
	"net/http"
	"time"

	"github.com/gospives/platform/internal/domain"
	"github.com/gospives/platform/internal/provider"
)

// NewsletterHandler records signup emails in the subscriber sheet.
type NewsletterHandler struct {
	sheet provider.SheetAppender
}

// NewNewsletterHandler creates a new NewsletterHandler.
func NewNewsletterHandler(sheet provider.SheetAppender) *NewsletterHandler {
	return &NewsletterHandler{sheet: sheet}
}

// Subscribe handles POST /api/newsletter.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		RespondError(w, domain.ErrValidation(err.Error()))
		return
	}

	row := []string{input.Email, time.Now().UTC().Format(time.RFC3339)}
	if err := h.sheet.AppendRow(r.Context(), row); err != nil {
		RespondError(w, domain.ErrUpstream("newsletter service", err))
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"message": "subscribed"})
}
