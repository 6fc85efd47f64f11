package wire

import (
	"fmt"
	"net/http"

	"media-review/internal/access"
	"media-review/internal/adaptor"
	"media-review/internal/data/repository"
	"media-review/internal/usecase"
	"media-review/pkg/mailer"
	"media-review/pkg/middleware"
	"media-review/pkg/security"
	"media-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// APIPrefix is where every resource route is mounted.
const APIPrefix = "/api/v1"

// App holds the assembled HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes from the repositories and config.
func Wiring(repo *repository.Repository, mail mailer.Mailer, config *utils.Config, logger *zap.Logger) (*App, error) {
	tokens, err := security.NewTokenIssuer(config.JWT.Secret, config.JWT.Issuer, config.JWT.TTL())
	if err != nil {
		return nil, fmt.Errorf("access tokens: %w", err)
	}

	codes, err := security.NewCodeGenerator(config.JWT.Secret, config.Confirmation.TTL())
	if err != nil {
		return nil, fmt.Errorf("confirmation codes: %w", err)
	}

	service := usecase.NewService(repo, tokens, codes, mail, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, tokens, repo, config, logger)

	return &App{
		Router: router,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	tokens middleware.TokenVerifier,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	r.Route(APIPrefix, func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens, repo.User, logger))

		wireAuth(r, handler.Auth, config)
		wireUser(r, handler.User, logger)
		wireCatalog(r, handler.Category, handler.Genre, logger)
		r.Route("/titles", func(r chi.Router) {
			wireTitle(r, handler.Title, logger)
			wireReview(r, handler.Review, handler.Comment, logger)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})
	r.Handle("/metrics", middleware.MetricsHandler())

	return r
}

// guard returns r with the collection-level access rule for resource and action applied.
func guard(r chi.Router, resource access.Resource, action access.Action, log *zap.Logger) chi.Router {
	return r.With(middleware.Authorize(resource, action, log))
}
