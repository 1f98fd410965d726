package settlement

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warikan-app/warikan/internal/group"
	"github.com/warikan-app/warikan/internal/settlement/split"
	"github.com/warikan-app/warikan/pkg/response"
)

// Handler handles HTTP requests for settlement summaries
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GroupSummary handles GET /groups/{groupID}/settlement
// @Summary      Settlement summary
// @Description  Group total, rounded per-person share, and each member's balance
// @Tags         settlement
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        round query string false "Rounding mode" Enums(round, ceil, floor)
// @Success      200 {object} response.APIResponse{data=Summary}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/settlement [get]
func (h *Handler) GroupSummary(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	mode := split.RoundMode(r.URL.Query().Get("round"))
	switch mode {
	case split.RoundNearest, split.RoundUp, split.RoundDown:
	case "":
		mode = split.RoundNearest
	default:
		response.BadRequest(w, "Invalid round mode")
		return
	}

	summary, err := h.service.GroupSummary(r.Context(), groupID, mode)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute settlement")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}
