package wire

import (
	"media-review/internal/adaptor"
	"media-review/pkg/middleware"
	"media-review/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
) {
	// public, throttled per client IP
	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(config.RateLimit.AuthRequests, config.RateLimit.AuthWindow))

		r.Post("/signup", authHandler.Signup)
		r.Post("/token", authHandler.Token)
	})
}
