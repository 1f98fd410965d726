package expense

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

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints. It is mounted under
// /groups/{groupID}/expenses, so every handler reads groupID from the
// parent route.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Add)
	r.Get("/", h.List)
	r.Put("/{expenseID}", h.Update)
	r.Delete("/{expenseID}", h.Delete)
	r.Put("/{expenseID}/paid-status", h.SetPaidStatus)

	return r
}

// Add handles POST /groups/{groupID}/expenses
// @Summary      Add an expense
// @Description  Records an expense in a group; paid_by defaults to the caller
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/expenses [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID := chi.URLParam(r, "groupID")

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	e, err := h.service.Add(r.Context(), groupID, userID, &req)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to add expense")
		return
	}

	response.JSON(w, http.StatusCreated, e.ToResponse())
}

// List handles GET /groups/{groupID}/expenses
// @Summary      List group expenses
// @Tags         expenses
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/expenses [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")

	expenses, err := h.service.ListByGroup(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list expenses")
		return
	}

	response.JSON(w, http.StatusOK, ToResponseList(expenses))
}

// Update handles PUT /groups/{groupID}/expenses/{expenseID}
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        expenseID path string true "Expense ID"
// @Param        request body UpdateExpenseRequest true "Expense update request"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/expenses/{expenseID} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	expenseID := chi.URLParam(r, "expenseID")

	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	e, err := h.service.Update(r.Context(), groupID, expenseID, &req)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update expense")
		return
	}

	response.JSON(w, http.StatusOK, e.ToResponse())
}

// Delete handles DELETE /groups/{groupID}/expenses/{expenseID}
// @Summary      Delete an expense
// @Tags         expenses
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        expenseID path string true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/expenses/{expenseID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	expenseID := chi.URLParam(r, "expenseID")

	if err := h.service.Delete(r.Context(), groupID, expenseID); err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete expense")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Expense deleted"})
}

// SetPaidStatus handles PUT /groups/{groupID}/expenses/{expenseID}/paid-status
// @Summary      Set the caller's paid flag on an expense
// @Description  Per-expense flag only; the group-level payment flag is separate
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        expenseID path string true "Expense ID"
// @Param        request body SetPaidStatusRequest true "Paid flag"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/expenses/{expenseID}/paid-status [put]
func (h *Handler) SetPaidStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID := chi.URLParam(r, "groupID")
	expenseID := chi.URLParam(r, "expenseID")

	var req SetPaidStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	e, err := h.service.SetPaidStatus(r.Context(), groupID, expenseID, userID, *req.Paid)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update paid status")
		return
	}

	response.JSON(w, http.StatusOK, e.ToResponse())
}
