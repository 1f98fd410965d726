package group

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/warikan-app/warikan/pkg/joinlink"
	"github.com/warikan-app/warikan/pkg/middleware"
	"github.com/warikan-app/warikan/pkg/response"
	"github.com/warikan-app/warikan/pkg/validate"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
	baseURL string
}

// NewHandler creates a new group handler. baseURL is the public base used
// for join deep links.
func NewHandler(service *Service, baseURL string) *Handler {
	return &Handler{service: service, baseURL: baseURL}
}

// Routes returns the router for group endpoints. The expense subrouter and
// the settlement endpoint are nested here because expenses live under their
// group.
func (h *Handler) Routes(expenses chi.Router, settlement http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListMine)
	r.Post("/join", h.JoinByLink)

	r.Route("/{groupID}", func(r chi.Router) {
		r.Get("/", h.GetByID)
		r.Delete("/", h.Delete)
		r.Post("/join", h.Join)
		r.Get("/qr", h.QRCode)
		r.Get("/settlement", settlement)
		r.Put("/members/{userID}/payment", h.SetMemberPaid)
		r.Mount("/expenses", expenses)
	})

	return r
}

// Create handles POST /groups
// @Summary      Create a group
// @Description  Creates a group; the caller becomes its first member
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	g, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		response.InternalError(w, "Failed to create group")
		return
	}

	resp := g.ToResponse()
	resp.JoinLink = joinlink.Build(h.baseURL, g.ID)
	response.JSON(w, http.StatusCreated, resp)
}

// ListMine handles GET /groups
// @Summary      List own groups
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]GroupResponse}
// @Router       /groups [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groups, err := h.service.ListByMember(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list groups")
		return
	}

	resps := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		resps[i] = g.ToResponse()
	}

	response.JSON(w, http.StatusOK, resps)
}

// GetByID handles GET /groups/{groupID}
// @Summary      Get a group with its members
// @Tags         groups
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	g, members, err := h.service.GetWithMembers(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get group")
		return
	}

	resp := g.ToResponse()
	resp.JoinLink = joinlink.Build(h.baseURL, g.ID)
	resp.Members = MembersToResponse(members)
	response.JSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /groups/{groupID}
// @Summary      Delete a group
// @Description  Creator only. Expenses and membership rows are removed with the group; invitation records are retained.
// @Tags         groups
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID := chi.URLParam(r, "groupID")

	if err := h.service.Delete(r.Context(), groupID, userID); err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to delete group")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Group deleted"})
}

// Join handles POST /groups/{groupID}/join, the direct QR/link membership
// path, which bypasses invitations entirely.
// @Summary      Join a group directly
// @Description  Adds the caller to the member set; joining twice is a no-op
// @Tags         groups
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/join [post]
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	h.join(w, r, chi.URLParam(r, "groupID"))
}

// JoinByLink handles POST /groups/join with a deep link in the body.
// @Summary      Join a group by deep link
// @Description  Extracts the group id as the last path segment of the link
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body JoinByLinkRequest true "Join link"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/join [post]
func (h *Handler) JoinByLink(w http.ResponseWriter, r *http.Request) {
	var req JoinByLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	h.join(w, r, joinlink.GroupID(req.Link))
}

func (h *Handler) join(w http.ResponseWriter, r *http.Request, groupID string) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.AddMember(r.Context(), groupID, userID); err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to join group")
		return
	}

	g, members, err := h.service.GetWithMembers(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to load group")
		return
	}

	resp := g.ToResponse()
	resp.Members = MembersToResponse(members)
	response.JSON(w, http.StatusOK, resp)
}

// QRCode handles GET /groups/{groupID}/qr
// @Summary      Join link QR code
// @Description  PNG QR code encoding the group's join deep link
// @Tags         groups
// @Produce      png
// @Param        groupID path string true "Group ID"
// @Success      200 {file} binary
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/qr [get]
func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	if _, err := h.service.GetByID(r.Context(), groupID); err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get group")
		return
	}

	png, err := qrcode.Encode(joinlink.Build(h.baseURL, groupID), qrcode.Medium, 256)
	if err != nil {
		response.InternalError(w, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// SetMemberPaid handles PUT /groups/{groupID}/members/{userID}/payment
// @Summary      Set a member's group-level payment flag
// @Description  Independent from per-expense paid status; no derivation between the two
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        userID path string true "User ID"
// @Param        request body SetMemberPaidRequest true "Payment flag"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/members/{userID}/payment [put]
func (h *Handler) SetMemberPaid(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	userID := chi.URLParam(r, "userID")

	var req SetMemberPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	if err := h.service.SetMemberPaid(r.Context(), groupID, userID, *req.Paid); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update payment status")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Payment status updated"})
}
