package usecase

import (
	"context"
	"errors"
	"time"

	"media-review/internal/data/entity"
	"media-review/internal/data/repository"
	"media-review/internal/dto/request"
	"media-review/internal/dto/response"
	"media-review/pkg/apperr"
	"media-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	List(ctx context.Context, req *request.SearchRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	Get(ctx context.Context, username string) (*response.UserResponse, error)
	Update(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, username string) error

	GetMe(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	// UpdateMe edits the caller's own profile. The stored role is always kept.
	UpdateMe(ctx context.Context, userID uuid.UUID, req *request.UpdateMeRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) List(ctx context.Context, req *request.SearchRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := us.userRepo.FindAll(ctx, req.Search, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	total, err := us.userRepo.CountAll(ctx, req.Search)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	data := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, response.UserToResponse(u))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (us *userService) Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	role := entity.RoleUser
	if req.Role != "" {
		role = entity.Role(req.Role)
	}

	now := time.Now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}

	if err := us.checkIdentityFree(ctx, user); err != nil {
		return nil, err
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		return nil, us.mapWriteError(err)
	}

	us.log.Info("User created", zap.String("user_id", user.ID.String()), zap.String("role", string(role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) findByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := us.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}
	return user, nil
}

func (us *userService) findByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}
	return user, nil
}

func (us *userService) Get(ctx context.Context, username string) (*response.UserResponse, error) {
	user, err := us.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) Update(ctx context.Context, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	user, err := us.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	applyProfile(user, req.Username, req.Email, req.FirstName, req.LastName, req.Bio)
	if req.Role != nil {
		user.Role = entity.Role(*req.Role)
	}

	return us.save(ctx, user)
}

func (us *userService) Delete(ctx context.Context, username string) error {
	user, err := us.findByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := us.userRepo.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user")
		}
		return apperr.Internal(err)
	}

	return nil
}

func (us *userService) GetMe(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateMe(ctx context.Context, userID uuid.UUID, req *request.UpdateMeRequest) (*response.UserResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	user, err := us.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfile(user, req.Username, req.Email, req.FirstName, req.LastName, req.Bio)

	return us.save(ctx, user)
}

func (us *userService) save(ctx context.Context, user *entity.User) (*response.UserResponse, error) {
	if err := us.checkIdentityFree(ctx, user); err != nil {
		return nil, err
	}

	user.UpdatedAt = time.Now().UTC()
	if err := us.userRepo.Update(ctx, user); err != nil {
		return nil, us.mapWriteError(err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// checkIdentityFree rejects a username or email already held by another account.
func (us *userService) checkIdentityFree(ctx context.Context, user *entity.User) error {
	other, err := us.userRepo.FindByUsername(ctx, user.Username)
	if err != nil {
		return apperr.Internal(err)
	}
	if other != nil && other.ID != user.ID {
		return apperr.Validation("username already taken", map[string]string{
			"username": "A user with that username already exists",
		})
	}

	other, err = us.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return apperr.Internal(err)
	}
	if other != nil && other.ID != user.ID {
		return apperr.Validation("email already taken", map[string]string{
			"email": "A user with that email already exists",
		})
	}

	return nil
}

func (us *userService) mapWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Validation("username or email already taken", map[string]string{
			"username": "A user with that username or email already exists",
		})
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("user")
	}
	us.log.Error("Failed to save user", zap.Error(err))
	return apperr.Internal(err)
}

func applyProfile(user *entity.User, username, email, firstName, lastName, bio *string) {
	if username != nil {
		user.Username = *username
	}
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
}
