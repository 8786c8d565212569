package audit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/opensplit/opensplit/pkg/response"
)

// Handler handles HTTP requests for audit events
type Handler struct {
	service *Service
}

// NewHandler creates a new audit handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for audit endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// ListByGroup handles GET /audit/group/{groupId}
// @Summary      List audit events
// @Description  Get a group's audit events, newest first
// @Tags         audit
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(50)
// @Success      200 {object} response.APIResponse{data=[]Event}
// @Router       /audit/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	events, err := h.service.ListByGroup(r.Context(), groupID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list audit events")
		return
	}

	response.JSON(w, http.StatusOK, events)
}
