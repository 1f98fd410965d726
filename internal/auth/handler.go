package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warikan-app/warikan/internal/user"
	"github.com/warikan-app/warikan/pkg/middleware"
	"github.com/warikan-app/warikan/pkg/response"
	"github.com/warikan-app/warikan/pkg/validate"
)

// Handler handles HTTP requests for authentication
type Handler struct {
	service *Service
	authMW  func(http.Handler) http.Handler
}

// NewHandler creates a new auth handler. authMW protects the routes that
// require an authenticated session.
func NewHandler(service *Service, authMW func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authMW: authMW}
}

// Routes returns the router for auth endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(h.authMW)
		r.Get("/me", h.Me)
	})

	return r
}

// Register handles POST /auth/register
// @Summary      Register a new user
// @Description  Creates an account and a profile keyed by the account id
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration request"
// @Success      201 {object} response.APIResponse{data=user.UserResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	profile, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists), errors.Is(err, ErrHandleTaken):
			response.Conflict(w, err.Error())
		case errors.Is(err, ErrWeakPassword):
			response.ValidationFailed(w, err.Error())
		default:
			response.InternalError(w, "Failed to register")
		}
		return
	}

	response.JSON(w, http.StatusCreated, profile.ToResponse())
}

// Login handles POST /auth/login
// @Summary      Log in
// @Description  Authenticates by handle (resolved to email) or email plus password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} response.APIResponse{data=SessionResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.ValidationFailed(w, err.Error())
		return
	}

	token, profile, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to log in")
		return
	}

	response.JSON(w, http.StatusOK, &SessionResponse{
		Token: token,
		User:  profile.ToResponse(),
	})
}

// Logout handles POST /auth/logout
// @Summary      Log out
// @Description  Sessions are stateless JWTs; the client discards its token
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Router       /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me handles GET /auth/me
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.APIResponse{data=user.UserResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get current user")
		return
	}

	response.JSON(w, http.StatusOK, profile.ToResponse())
}
