// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripmesh/tripmesh/internal/platform/middleware"
	"github.com/tripmesh/tripmesh/internal/platform/requestutil"
	"github.com/tripmesh/tripmesh/internal/platform/respond"
	"github.com/tripmesh/tripmesh/internal/platform/sec"
	"github.com/tripmesh/tripmesh/internal/platform/validate"
	"github.com/tripmesh/tripmesh/pkg/pagination"
)

// Handler implements identity-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Profile, Password Reset).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts the identity endpoints onto the given router.
//
// # Endpoints
//   - POST /register                : Creates a new account.
//   - POST /login                   : Authenticates and returns a JWT.
//   - POST /password-reset/request  : Issues a reset token.
//   - POST /password-reset/confirm  : Consumes a reset token.
//   - GET  /me, PUT /me, DELETE /me : Authenticated self-service.
//   - GET  /                        : Admin account listing.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/password-reset/request", handler.requestPasswordReset)
	router.Post("/password-reset/confirm", handler.confirmPasswordReset)

	// Authenticated self-service
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Get("/me", handler.getProfile)
		authRoute.Put("/me", handler.updateProfile)
		authRoute.Delete("/me", handler.deleteAccount)

		// Admin strict only
		authRoute.With(middleware.RequireRole(sec.RoleAdmin)).Get("/", handler.listUsers)
	})
}

// registerRequest represents the JSON payload expected for account creation.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register handles POST /api/v1/users/register requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the User profile.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if email/username is taken.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	// Service handles validation, uniqueness checks and Bcrypt hashing.
	// If it fails, we simply pass the domain error to the respond helper
	// which will automatically map it to the correct HTTP status code.
	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, user)
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Login    string `json:"login"` // Can be Username or Email
	Password string `json:"password"`
}

// login handles POST /api/v1/users/login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with AccessToken and User profile.
//   - Writes HTTP 401 Unauthorized for bad credentials.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if input.Login == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("login/password", "are required"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Login:    input.Login,
		Password: input.Password,
	})

	if err != nil {
		// Returns HTTP 401 Unauthorized without leaking whether the login
		// or the password was wrong.
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, map[string]any{
		"access_token": result.AccessToken,
		"expires_at":   result.ExpiresAt,
		"user":         result.User,
	})
}

// getProfile handles GET /api/v1/users/me requests.
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateProfileRequest carries the optional profile fields for PUT /me.
type updateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// updateProfile handles PUT /api/v1/users/me requests.
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// deleteAccount handles DELETE /api/v1/users/me requests.
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// listUsers handles GET /api/v1/users requests (admin only).
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	users, total, err := handler.authService.ListUsers(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// resetRequestPayload carries the email for a password reset request.
type resetRequestPayload struct {
	Email string `json:"email"`
}

// requestPasswordReset handles POST /api/v1/users/password-reset/request.
//
// Always answers 204 regardless of whether the email exists, to avoid
// account enumeration. The token itself is delivered out-of-band.
func (handler *Handler) requestPasswordReset(writer http.ResponseWriter, request *http.Request) {
	var input resetRequestPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Email == "" {
		respond.Error(writer, request, validate.RequiredError("email", "is required"))
		return
	}

	// Errors are swallowed on purpose: an attacker must not be able to
	// distinguish registered from unregistered emails by the response.
	_, _ = handler.authService.RequestPasswordReset(request.Context(), input.Email)

	respond.NoContent(writer)
}

// resetConfirmPayload carries the token and replacement password.
type resetConfirmPayload struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// confirmPasswordReset handles POST /api/v1/users/password-reset/confirm.
func (handler *Handler) confirmPasswordReset(writer http.ResponseWriter, request *http.Request) {
	var input resetConfirmPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Token == "" {
		respond.Error(writer, request, validate.RequiredError("token", "is required"))
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
