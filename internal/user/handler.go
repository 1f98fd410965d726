package user

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warikan-app/warikan/pkg/middleware"
	"github.com/warikan-app/warikan/pkg/response"
	"github.com/warikan-app/warikan/pkg/validate"
)

const maxAvatarBytes = 5 << 20 // 5 MiB

// Handler handles HTTP requests for profile operations
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for user endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Search)
	r.Get("/{id}", h.GetByID)
	r.Put("/me", h.UpdateMe)
	r.Post("/me/avatar", h.UploadAvatar)

	return r
}

// Search handles GET /users?handle={handle}
// @Summary      Find a user by handle
// @Description  Exact handle match, used when inviting members
// @Tags         users
// @Produce      json
// @Param        handle query string true "User handle"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /users [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	handle := r.URL.Query().Get("handle")
	if handle == "" {
		response.BadRequest(w, "handle query parameter required")
		return
	}

	u, err := h.service.GetByHandle(r.Context(), handle)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to search users")
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}

// GetByID handles GET /users/{id}
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /users/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get user")
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}

// UpdateMe handles PUT /users/me
// @Summary      Update own profile
// @Description  Update the authenticated user's username or avatar URL
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile update request"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /users/me [put]
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update profile")
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}

// UploadAvatar handles POST /users/me/avatar
// @Summary      Upload an avatar image
// @Description  Multipart upload; the image is stored in the blob store and the profile's avatar URL is updated
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        avatar formData file true "Avatar image"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /users/me/avatar [post]
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "avatar file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
	if err != nil {
		response.BadRequest(w, "Failed to read avatar file")
		return
	}

	u, err := h.service.SetAvatar(r.Context(), userID, data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrAvatarsDisabled):
			response.Error(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", err.Error())
		default:
			response.InternalError(w, "Failed to upload avatar")
		}
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}
