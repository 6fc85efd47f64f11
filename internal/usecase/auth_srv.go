package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
	"media-review/pkg/apperr"
	"media-review/pkg/mailer"
	"media-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	// Signup creates the account if needed and mails it a confirmation code.
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	// Token exchanges a confirmation code for an access token.
	Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	codes  CodeIssuer
	mailer mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens TokenIssuer,
	codes CodeIssuer,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		codes:  codes,
		mailer: mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

const confirmationSubject = "Your confirmation code"

func invalidConfirmationCode() error {
	return apperr.Validation("invalid confirmation code", map[string]string{
		"confirmation_code": "Invalid confirmation code",
	})
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.findOrCreate(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}

	code := s.codes.Generate(user.SecurityState())
	body := fmt.Sprintf("Hello %s,\n\nyour confirmation code is: %s\n", user.Username, code)

	if err := s.mailer.Send(ctx, user.Email, confirmationSubject, body); err != nil {
		s.log.Error("Failed to send confirmation code", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Unavailable("could not send confirmation code, try again later", err)
	}

	s.log.Info("Confirmation code sent", zap.String("user_id", user.ID.String()))

	return &response.SignupResponse{Username: user.Username, Email: user.Email}, nil
}

// findOrCreate returns the account matching both username and email, creating
// it when neither is taken. A username or email held by a different account is rejected.
func (s *authService) findOrCreate(ctx context.Context, username, email string) (*entity.User, error) {
	byName, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", username))
		return nil, apperr.Internal(err)
	}
	if byName != nil {
		if byName.Email != email {
			return nil, apperr.Validation("username is registered with a different email", map[string]string{
				"username": "A user with that username already exists",
			})
		}
		return byName, nil
	}

	byEmail, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err))
		return nil, apperr.Internal(err)
	}
	if byEmail != nil {
		return nil, apperr.Validation("email is registered with a different username", map[string]string{
			"email": "A user with that email already exists",
		})
	}

	now := time.Now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: username,
		Email:    email,
		Role:     entity.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("username or email already registered", map[string]string{
				"username": "A user with that username or email already exists",
			})
		}
		return nil, apperr.Internal(err)
	}

	s.log.Info("User signed up", zap.String("user_id", user.ID.String()), zap.String("username", username))
	return user, nil
}

func (s *authService) Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("username", req.Username))
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	if !s.codes.Verify(user.SecurityState(), req.ConfirmationCode) {
		s.log.Warn("Invalid confirmation code", zap.String("user_id", user.ID.String()))
		return nil, invalidConfirmationCode()
	}

	// changes the signed state, so the code cannot be replayed;
	// a concurrent exchange of the same code loses here
	if err := s.users.UpdateLastLogin(ctx, user.ID, user.LastLogin, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidConfirmationCode()
		}
		s.log.Error("Failed to record login", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Internal(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Internal(err)
	}

	s.log.Info("Access token issued", zap.String("user_id", user.ID.String()))

	return &response.TokenResponse{Token: token.Token, ExpiresAt: token.ExpiresAt}, nil
}
