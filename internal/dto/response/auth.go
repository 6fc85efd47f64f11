package response

import (
	"time"

	"media-review/internal/data/entity"
)

// SignupResponse echoes the accepted identity; the code itself only travels by mail.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserResponse struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       string      `json:"bio"`
	Role      entity.Role `json:"role"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
	}
}
