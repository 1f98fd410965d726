package invitation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warikan-app/warikan/internal/group"
	"github.com/warikan-app/warikan/pkg/middleware"
	"github.com/warikan-app/warikan/pkg/response"
	"github.com/warikan-app/warikan/pkg/validate"
)

// Handler handles HTTP requests for invitation operations
type Handler struct {
	service *Service
}

// NewHandler creates a new invitation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for invitation endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Send)
	r.Get("/", h.ListPending)
	r.Post("/{invitationID}/accept", h.Accept)
	r.Post("/{invitationID}/decline", h.Decline)

	return r
}

// Send handles POST /invitations
// @Summary      Send an invitation
// @Description  Target with "@" is invited by email; anything else must match a registered handle. Re-inviting a pending target returns the existing invitation.
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        request body SendInvitationRequest true "Invitation request"
// @Success      201 {object} response.APIResponse{data=InvitationResponse}
// @Success      200 {object} response.APIResponse{data=InvitationResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /invitations [post]
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	inv, alreadyInvited, err := h.service.Send(r.Context(), req.GroupID, req.Target)
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound), errors.Is(err, ErrInviteeNotFound):
			response.NotFound(w, err.Error())
		default:
			response.InternalError(w, "Failed to send invitation")
		}
		return
	}

	resp := inv.ToResponse()
	resp.AlreadyInvited = alreadyInvited
	status := http.StatusCreated
	if alreadyInvited {
		status = http.StatusOK
	}
	response.JSON(w, status, resp)
}

// ListPending handles GET /invitations
// @Summary      List own pending invitations
// @Description  Invitations addressed to the caller's user id or email, merged
// @Tags         invitations
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]InvitationResponse}
// @Router       /invitations [get]
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	email, _ := middleware.GetUserEmail(r.Context())

	invitations, err := h.service.ListPending(r.Context(), userID, email)
	if err != nil {
		response.InternalError(w, "Failed to list invitations")
		return
	}

	response.JSON(w, http.StatusOK, ToResponseList(invitations))
}

// Accept handles POST /invitations/{invitationID}/accept
// @Summary      Accept an invitation
// @Description  Joins the caller to the group. Accepting twice succeeds; accepting a declined invitation is a conflict.
// @Tags         invitations
// @Produce      json
// @Param        invitationID path string true "Invitation ID"
// @Success      200 {object} response.APIResponse{data=group.GroupResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /invitations/{invitationID}/accept [post]
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	email, _ := middleware.GetUserEmail(r.Context())

	invitationID := chi.URLParam(r, "invitationID")

	g, members, err := h.service.Accept(r.Context(), invitationID, userID, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvitationNotFound), errors.Is(err, group.ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotInvitee):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrAlreadyDeclined):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to accept invitation")
		}
		return
	}

	resp := g.ToResponse()
	resp.Members = group.MembersToResponse(members)
	response.JSON(w, http.StatusOK, resp)
}

// Decline handles POST /invitations/{invitationID}/decline
// @Summary      Decline an invitation
// @Description  Declining twice is a no-op; declining an accepted invitation is a conflict
// @Tags         invitations
// @Produce      json
// @Param        invitationID path string true "Invitation ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /invitations/{invitationID}/decline [post]
func (h *Handler) Decline(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}
	email, _ := middleware.GetUserEmail(r.Context())

	invitationID := chi.URLParam(r, "invitationID")

	if err := h.service.Decline(r.Context(), invitationID, userID, email); err != nil {
		switch {
		case errors.Is(err, ErrInvitationNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotInvitee):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrAlreadyAccepted):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to decline invitation")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Invitation declined"})
}
