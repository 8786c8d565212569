package ledger

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/opensplit/opensplit/pkg/response"
)

// Handler handles HTTP requests for balance operations
type Handler struct {
	service *Service
}

// NewHandler creates a new balances handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}", h.GetByGroup)
	r.Post("/group/{groupId}/simplify", h.Simplify)

	return r
}

// GetByGroup handles GET /balances/group/{groupId}
// @Summary      Get group balances
// @Description  Recompute net and pairwise balances from the group's full history
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]BalanceResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /balances/group/{groupId} [get]
func (h *Handler) GetByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, err := h.service.ComputeBalances(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to compute balances")
		return
	}

	response.JSON(w, http.StatusOK, balances.ToResponse())
}

// Simplify handles POST /balances/group/{groupId}/simplify
// @Summary      Suggest settling transfers
// @Description  Greedy largest-debtor-to-largest-creditor suggestions that would zero all balances
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]TransferResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /balances/group/{groupId}/simplify [post]
func (h *Handler) Simplify(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	transfers, err := h.service.SuggestTransfers(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to suggest transfers")
		return
	}

	out := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		out[i] = t.ToResponse()
	}

	response.JSON(w, http.StatusOK, out)
}
