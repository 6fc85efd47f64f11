package wire

import (
	"media-review/internal/access"
	"media-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTitle(
	r chi.Router,
	titleHandler *adaptor.TitleHandler,
	log *zap.Logger,
) {
	// GET /titles?category=&genre=&name=&year=
	guard(r, access.ResourceTitle, access.ActionList, log).Get("/", titleHandler.List)
	guard(r, access.ResourceTitle, access.ActionCreate, log).Post("/", titleHandler.Create)

	guard(r, access.ResourceTitle, access.ActionRetrieve, log).Get("/{title_id}", titleHandler.Get)
	guard(r, access.ResourceTitle, access.ActionPartialUpdate, log).Patch("/{title_id}", titleHandler.Update)
	guard(r, access.ResourceTitle, access.ActionDestroy, log).Delete("/{title_id}", titleHandler.Delete)
}
