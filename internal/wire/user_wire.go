package wire

import (
	"media-review/internal/access"
	"media-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser mounts the self profile and the admin account management routes.
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	log *zap.Logger,
) {
	// static /users/me wins over /users/{username}
	guard(r, access.ResourceSelf, access.ActionRetrieve, log).Get("/users/me", userHandler.GetMe)
	guard(r, access.ResourceSelf, access.ActionPartialUpdate, log).Patch("/users/me", userHandler.UpdateMe)

	guard(r, access.ResourceAccount, access.ActionList, log).Get("/users", userHandler.List)
	guard(r, access.ResourceAccount, access.ActionCreate, log).Post("/users", userHandler.Create)
	guard(r, access.ResourceAccount, access.ActionRetrieve, log).Get("/users/{username}", userHandler.Get)
	guard(r, access.ResourceAccount, access.ActionPartialUpdate, log).Patch("/users/{username}", userHandler.Update)
	guard(r, access.ResourceAccount, access.ActionDestroy, log).Delete("/users/{username}", userHandler.Delete)
}
