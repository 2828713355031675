package admin

import (
	"net/http"
	"strconv"

	"github.com/gospives/platform/internal/handler"
	"github.com/gospives/platform/internal/service"
)

// UserAdminHandler handles admin user management and dashboard data.
type UserAdminHandler struct {
	adminSvc *service.AdminService
}

// NewUserAdminHandler creates a new UserAdminHandler.
func NewUserAdminHandler(adminSvc *service.AdminService) *UserAdminHandler {
	return &UserAdminHandler{adminSvc: adminSvc}
}

// ListUsers handles GET /api/admin/users.
func (h *UserAdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminSvc.ListUsers(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, users)
}

// AddUser handles POST /api/admin/users.
func (h *UserAdminHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var input service.AddUserInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "invalid request body",
		})
		return
	}

	id, err := h.adminSvc.AddUser(r.Context(), input)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, map[string]string{
		"id":      id.String(),
		"message": "user created",
	})
}

// Stats handles GET /api/admin/stats.
func (h *UserAdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminSvc.Stats(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, stats)
}

// RecentPlayers handles GET /api/admin/recent-players?limit=n.
func (h *UserAdminHandler) RecentPlayers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	players, err := h.adminSvc.RecentPlayers(r.Context(), limit)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, players)
}
