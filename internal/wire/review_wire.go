package wire

import (
	"media-review/internal/access"
	"media-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireReview mounts reviews under a title and comments under a review.
// Ownership of the addressed review or comment is checked by the services.
func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	commentHandler *adaptor.CommentHandler,
	log *zap.Logger,
) {
	r.Route("/{title_id}/reviews", func(r chi.Router) {
		guard(r, access.ResourceReview, access.ActionList, log).Get("/", reviewHandler.List)
		guard(r, access.ResourceReview, access.ActionCreate, log).Post("/", reviewHandler.Create)

		r.Route("/{review_id}", func(r chi.Router) {
			guard(r, access.ResourceReview, access.ActionRetrieve, log).Get("/", reviewHandler.Get)
			guard(r, access.ResourceReview, access.ActionPartialUpdate, log).Patch("/", reviewHandler.Update)
			guard(r, access.ResourceReview, access.ActionDestroy, log).Delete("/", reviewHandler.Delete)

			r.Route("/comments", func(r chi.Router) {
				guard(r, access.ResourceComment, access.ActionList, log).Get("/", commentHandler.List)
				guard(r, access.ResourceComment, access.ActionCreate, log).Post("/", commentHandler.Create)

				guard(r, access.ResourceComment, access.ActionRetrieve, log).Get("/{comment_id}", commentHandler.Get)
				guard(r, access.ResourceComment, access.ActionPartialUpdate, log).Patch("/{comment_id}", commentHandler.Update)
				guard(r, access.ResourceComment, access.ActionDestroy, log).Delete("/{comment_id}", commentHandler.Delete)
			})
		})
	})
}
