package adaptor

import (
	"net/http"

	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

type commentIDs struct {
	title, review, comment uuid.UUID
}

func commentPath(r *http.Request, withComment bool) (commentIDs, error) {
	var ids commentIDs
	var err error
	if ids.title, ids.review, err = reviewPath(r, true); err != nil {
		return ids, err
	}
	if withComment {
		ids.comment, err = uuidParam(r, "comment_id", "comment")
	}
	return ids, err
}

// List handles GET .../reviews/{review_id}/comments (public)
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := commentPath(r, false)
	if err != nil {
		h.handleServiceError(w, err, "list comments")
		return
	}

	query := r.URL.Query()
	req := request.NewPaginatedRequest(query.Get("page"), query.Get("per_page"))

	comments, err := h.service.List(r.Context(), ids.title, ids.review, &req)
	if err != nil {
		h.handleServiceError(w, err, "list comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// Get handles GET .../comments/{comment_id} (public)
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ids, err := commentPath(r, true)
	if err != nil {
		h.handleServiceError(w, err, "get comment")
		return
	}

	comment, err := h.service.Get(r.Context(), ids.title, ids.review, ids.comment)
	if err != nil {
		h.handleServiceError(w, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// Create handles POST .../reviews/{review_id}/comments (authenticated)
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ids, err := commentPath(r, false)
	if err != nil {
		h.handleServiceError(w, err, "create comment")
		return
	}

	var req request.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.Create(r.Context(), subject(r), ids.title, ids.review, &req)
	if err != nil {
		h.handleServiceError(w, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "success", comment)
}

// Update handles PATCH .../comments/{comment_id} (author or staff)
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ids, err := commentPath(r, true)
	if err != nil {
		h.handleServiceError(w, err, "update comment")
		return
	}

	var req request.CommentUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.Update(r.Context(), subject(r), ids.title, ids.review, ids.comment, &req)
	if err != nil {
		h.handleServiceError(w, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// Delete handles DELETE .../comments/{comment_id} (author or staff)
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ids, err := commentPath(r, true)
	if err != nil {
		h.handleServiceError(w, err, "delete comment")
		return
	}

	if err := h.service.Delete(r.Context(), subject(r), ids.title, ids.review, ids.comment); err != nil {
		h.handleServiceError(w, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}

func (h *CommentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondError(w, h.log, err, operation)
}
