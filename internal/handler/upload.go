package handler

import (
	"net/http"

	"github.com/gospives/platform/internal/domain"
	"github.com/gospives/platform/internal/provider"
)

// maxUploadBytes caps profile image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// UploadHandler forwards profile image uploads to the image store.
type UploadHandler struct {
	store provider.ImageStore
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(store provider.ImageStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload handles POST /api/upload. The response carries the stored reference
// the client submits back in the final wizard step.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		RespondError(w, domain.ErrValidation("invalid multipart body"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		RespondError(w, domain.ErrValidation("file field is required"))
		return
	}
	defer file.Close()

	result, err := h.store.Upload(r.Context(), file, header.Filename)
	if err != nil {
		RespondError(w, domain.ErrUpstream("image store", err))
		return
	}

	RespondJSON(w, http.StatusOK, result)
}
