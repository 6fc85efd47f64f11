package adaptor

import (
	"context"
	"net/http"

	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
	"media-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// tagService is the shared surface of the category and genre services.
type tagService interface {
	List(ctx context.Context, req *request.SearchRequest) (*response.PaginatedResponse[response.TagResponse], error)
	Create(ctx context.Context, req *request.TagRequest) (*response.TagResponse, error)
	Delete(ctx context.Context, slug string) error
}

// TagHandler serves categories and genres, which share one shape.
type TagHandler struct {
	service tagService
	kind    string
	log     *zap.Logger
}

func NewTagHandler(service tagService, kind string, log *zap.Logger) *TagHandler {
	return &TagHandler{
		service: service,
		kind:    kind,
		log:     log.With(zap.String("handler", kind)),
	}
}

// List handles GET /api/v1/categories and /api/v1/genres (public)
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.SearchRequest{
		PaginatedRequest: request.NewPaginatedRequest(query.Get("page"), query.Get("per_page")),
		Search:           query.Get("search"),
	}

	tags, err := h.service.List(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list "+h.kind)
		return
	}

	utils.ResponseSuccess(w, "success", tags)
}

// Create handles POST (admin only)
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.TagRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tag, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create "+h.kind)
		return
	}

	utils.ResponseCreated(w, "success", tag)
}

// Delete handles DELETE /{slug} (admin only)
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		h.handleServiceError(w, err, "delete "+h.kind)
		return
	}

	utils.ResponseNoContent(w)
}

func (h *TagHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondError(w, h.log, err, operation)
}
