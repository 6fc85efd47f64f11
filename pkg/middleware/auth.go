package middleware

import (
	"net/http"
	"strings"

	"media-review/internal/access"
	"media-review/internal/data/repository"
	"media-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenVerifier resolves a bearer token to the account it was issued for.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// Authenticate identifies the requester from an optional bearer token.
// Requests without an Authorization header continue as anonymous; a
// malformed, expired or orphaned token is rejected with 401.
func Authenticate(verifier TokenVerifier, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("Rejected access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load token owner",
					zap.String("user_id", userID.String()),
					zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			// account deleted after the token was issued
			if user == nil {
				logger.Warn("Token for unknown account", zap.String("user_id", userID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role), user.IsSuperuser)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize applies the collection-level rule for resource and action.
// Object-level ownership checks happen in the services.
func Authorize(resource access.Resource, action access.Action, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := access.SubjectFromContext(r.Context())

			decision := access.CheckPermission(subject, resource, action)
			if err := decision.Err(); err != nil {
				if subject.Authenticated {
					logger.Warn("Permission denied",
						zap.String("user_id", subject.ID.String()),
						zap.String("resource", string(resource)),
						zap.String("action", string(action)),
						zap.String("path", r.URL.Path))
				}
				utils.ResponseError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
