package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"media-review/internal/access"
	"media-review/internal/usecase"
	"media-review/pkg/apperr"
	"media-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *TagHandler
	Genre    *TagHandler
	Title    *TitleHandler
	Review   *ReviewHandler
	Comment  *CommentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Category: NewTagHandler(service.Category, "category", log),
		Genre:    NewTagHandler(service.Genre, "genre", log),
		Title:    NewTitleHandler(service.Title, log),
		Review:   NewReviewHandler(service.Review, log),
		Comment:  NewCommentHandler(service.Comment, log),
	}
}

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst. It writes a 400 and returns
// false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) {
		utils.ResponseBadRequest(w, "Request body is required", nil)
		return false
	}
	utils.ResponseBadRequest(w, "Invalid request body", nil)
	return false
}

// uuidParam parses a chi URL parameter. A malformed id cannot name an
// existing row, so it is reported as not found.
func uuidParam(r *http.Request, name, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.NotFound(resource)
	}
	return id, nil
}

func subject(r *http.Request) access.Subject {
	return access.SubjectFromContext(r.Context())
}

// respondError logs err at a level matching its status and writes it.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	ae := apperr.As(err)
	switch {
	case ae == nil || ae.HTTPStatus >= http.StatusInternalServerError:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
	default:
		log.Debug(operation+" rejected",
			zap.String("code", ae.Code),
			zap.String("message", ae.Message),
			zap.String("operation", operation))
	}
	utils.ResponseError(w, err)
}
