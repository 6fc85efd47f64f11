package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	RoleKey      contextKey = "role"
	SuperuserKey contextKey = "superuser"
	TokenKey     contextKey = "token"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

func GetSuperuserFromContext(ctx context.Context) bool {
	superuser, _ := ctx.Value(SuperuserKey).(bool)
	return superuser
}

// SetUserContext stores the authenticated account on the request context.
func SetUserContext(ctx context.Context, userID uuid.UUID, role string, superuser bool) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, RoleKey, role)
	ctx = context.WithValue(ctx, SuperuserKey, superuser)
	return ctx
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
