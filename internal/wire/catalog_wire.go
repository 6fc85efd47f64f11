package wire

import (
	"media-review/internal/access"
	"media-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	categoryHandler *adaptor.TagHandler,
	genreHandler *adaptor.TagHandler,
	log *zap.Logger,
) {
	mount := func(path string, resource access.Resource, h *adaptor.TagHandler) {
		r.Route(path, func(r chi.Router) {
			guard(r, resource, access.ActionList, log).Get("/", h.List)
			guard(r, resource, access.ActionCreate, log).Post("/", h.Create)
			guard(r, resource, access.ActionDestroy, log).Delete("/{slug}", h.Delete)
		})
	}

	mount("/categories", access.ResourceCategory, categoryHandler)
	mount("/genres", access.ResourceGenre, genreHandler)
}
