package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gospives/platform/internal/domain"
	"github.com/gospives/platform/internal/service"
)

// TalentHandler serves the public talent directory and player profiles.
type TalentHandler struct {
	dirSvc *service.DirectoryService
}

// NewTalentHandler creates a new TalentHandler.
func NewTalentHandler(dirSvc *service.DirectoryService) *TalentHandler {
	return &TalentHandler{dirSvc: dirSvc}
}

// List handles GET /api/talents. All filters are independently optional query
// parameters.
func (h *TalentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))

	result, err := h.dirSvc.Query(r.Context(), service.DirectoryParams{
		Page:     page,
		Foot:     q.Get("powerFoot"),
		Position: q.Get("position"),
		Search:   q.Get("search"),
		AgeRange: q.Get("age"),
	})
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, result)
}

// profileResponse is the public view of one player.
type profileResponse struct {
	domain.Identity
	Age    int    `json:"age"`
	Status string `json:"status"`
}

// Profile handles GET /api/player/{nickname}.
func (h *TalentHandler) Profile(w http.ResponseWriter, r *http.Request) {
	nickname := chi.URLParam(r, "nickname")

	reg, err := h.dirSvc.ProfileByNickname(r.Context(), nickname)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, profileResponse{
		Identity: reg.Identity(),
		Age:      reg.Age(time.Now()),
		Status:   reg.PlayerStatus(),
	})
}
