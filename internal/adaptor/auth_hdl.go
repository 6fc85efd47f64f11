package adaptor

import (
	"net/http"

	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "signup")
		return
	}

	utils.ResponseSuccess(w, "Confirmation code sent", resp)
}

// Token handles POST /api/v1/auth/token
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req request.TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Token(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "issue token")
		return
	}

	utils.ResponseSuccess(w, "Token issued", resp)
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondError(w, h.log, err, operation)
}
