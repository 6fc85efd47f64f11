package adaptor

import (
	"net/http"

	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/apperr"
	"media-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// List handles GET /api/v1/users (admin only)
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.SearchRequest{
		PaginatedRequest: request.NewPaginatedRequest(query.Get("page"), query.Get("per_page")),
		Search:           query.Get("search"),
	}

	users, err := h.service.List(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// Create handles POST /api/v1/users (admin only)
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created successfully", user)
}

// Get handles GET /api/v1/users/{username} (admin only)
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.handleServiceError(w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// Update handles PATCH /api/v1/users/{username} (admin only)
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Update(r.Context(), chi.URLParam(r, "username"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated successfully", user)
}

// Delete handles DELETE /api/v1/users/{username} (admin only)
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "username")); err != nil {
		h.handleServiceError(w, err, "delete user")
		return
	}

	utils.ResponseNoContent(w)
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.handleServiceError(w, apperr.Unauthenticated("Authentication required"), "get profile")
		return
	}

	profile, err := h.service.GetMe(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// UpdateMe handles PATCH /api/v1/users/me. A role in the body is ignored.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.handleServiceError(w, apperr.Unauthenticated("Authentication required"), "update profile")
		return
	}

	var req request.UpdateMeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.service.UpdateMe(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully", profile)
}

func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondError(w, h.log, err, operation)
}
