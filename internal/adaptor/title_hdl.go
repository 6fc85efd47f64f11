package adaptor

import (
	"net/http"

	"media-review/internal/dto/request"
	"media-review/internal/usecase"
	"media-review/pkg/utils"

	"go.uber.org/zap"
)

type TitleHandler struct {
	service usecase.TitleService
	log     *zap.Logger
}

func NewTitleHandler(service usecase.TitleService, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		log:     log.With(zap.String("handler", "title")),
	}
}

// List handles GET /api/v1/titles with optional category, genre, name and year filters.
func (h *TitleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.TitleFilterRequest{
		PaginatedRequest: request.NewPaginatedRequest(query.Get("page"), query.Get("per_page")),
		Category:         query.Get("category"),
		Genre:            query.Get("genre"),
		Name:             query.Get("name"),
		Year:             utils.ParseInt(query.Get("year"), 0),
	}

	titles, err := h.service.List(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list titles")
		return
	}

	utils.ResponseSuccess(w, "success", titles)
}

// Get handles GET /api/v1/titles/{title_id}
func (h *TitleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "title_id", "title")
	if err != nil {
		h.handleServiceError(w, err, "get title")
		return
	}

	title, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get title")
		return
	}

	utils.ResponseSuccess(w, "success", title)
}

// Create handles POST /api/v1/titles (admin only)
func (h *TitleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.TitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	title, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create title")
		return
	}

	utils.ResponseCreated(w, "success", title)
}

// Update handles PATCH /api/v1/titles/{title_id} (admin only)
func (h *TitleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "title_id", "title")
	if err != nil {
		h.handleServiceError(w, err, "update title")
		return
	}

	var req request.TitleUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	title, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update title")
		return
	}

	utils.ResponseSuccess(w, "success", title)
}

// Delete handles DELETE /api/v1/titles/{title_id} (admin only)
func (h *TitleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "title_id", "title")
	if err != nil {
		h.handleServiceError(w, err, "delete title")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete title")
		return
	}

	utils.ResponseNoContent(w)
}

func (h *TitleHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	respondError(w, h.log, err, operation)
}
