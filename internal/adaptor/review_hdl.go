package adaptor

import (
	"net/http"

	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// reviewPath reads {title_id} and, when withReview is set, {review_id}.
func reviewPath(r *http.Request, withReview bool) (titleID, reviewID uuid.UUID, err error) {
	titleID, err = uuidParam(r, "title_id", "title")
	if err != nil || !withReview {
		return titleID, uuid.Nil, err
	}
	reviewID, err = uuidParam(r, "review_id", "review")
	return titleID, reviewID, err
}

// List handles GET /api/v1/titles/{title_id}/reviews (public)
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	titleID, _, err := reviewPath(r, false)
	if err != nil {
		h.handleServiceError(w, err, "list reviews")
		return
	}

	query := r.URL.Query()
	req := request.NewPaginatedRequest(query.Get("page"), query.Get("per_page"))

	reviews, err := h.service.List(r.Context(), titleID, &req)
	if err != nil {
		h.handleServiceError(w, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// Get handles GET /api/v1/titles/{title_id}/reviews/{review_id} (public)
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, err := reviewPath(r, true)
	if err != nil {
		h.handleServiceError(w, err, "get review")
		return
	}

	review, err := h.service.Get(r.Context(), titleID, reviewID)
	if err != nil {
		h.handleServiceError(w, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// Create handles POST /api/v1/titles/{title_id}/reviews (authenticated)
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	titleID, _, err := reviewPath(r, false)
	if err != nil {
		h.handleServiceError(w, err, "create review")
		return
	}

	var req request.ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.Create(r.Context(), subject(r), titleID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// Update handles PATCH /api/v1/titles/{title_id}/reviews/{review_id} (author or staff)
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, err := reviewPath(r, true)
	if err != nil {
		h.handleServiceError(w, err, "update review")
		return
	}

	var req request.ReviewUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.Update(r.Context(), subject(r), titleID, reviewID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// Delete handles DELETE /api/v1/titles/{title_id}/reviews/{review_id} (author or staff)
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, err := reviewPath(r, true)
	if err != nil {
		h.handleServiceError(w, err, "delete review")
		return
	}

	if err := h.service.Delete(r.Context(), subject(r), titleID, reviewID); err != nil {
		h.handleServiceError(w, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}

func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondError(w, h.log, err, operation)
}
