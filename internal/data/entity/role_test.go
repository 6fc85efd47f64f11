package entity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-review/internal/data/entity"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"user", "moderator", "admin"} {
		r, err := entity.ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, entity.Role(s), r)
	}

	for _, s := range []string{"", "Admin", "superuser"} {
		_, err := entity.ParseRole(s)
		assert.Error(t, err, s)
	}
}

func TestRoleCan(t *testing.T) {
	tests := []struct {
		role       entity.Role
		moderate   bool
		administer bool
	}{
		{entity.RoleUser, false, false},
		{entity.RoleModerator, true, false},
		{entity.RoleAdmin, true, true},
		{entity.Role("root"), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.moderate, tt.role.Can(entity.CapModerate))
			assert.Equal(t, tt.administer, tt.role.Can(entity.CapAdminister))
		})
	}
}

func TestUserIsAdminEitherFlag(t *testing.T) {
	assert.True(t, (&entity.User{Role: entity.RoleAdmin}).IsAdmin())
	assert.True(t, (&entity.User{Role: entity.RoleUser, IsSuperuser: true}).IsAdmin())
	assert.False(t, (&entity.User{Role: entity.RoleModerator}).IsAdmin())
}

func TestSecurityStateTracksMutableFields(t *testing.T) {
	now := time.Now()
	base := entity.User{
		Base:     entity.Base{ID: uuid.New(), UpdatedAt: now},
		Username: "alice",
		Email:    "alice@example.com",
		Role:     entity.RoleUser,
	}
	state := base.SecurityState()

	login := base
	login.LastLogin = &now
	assert.NotEqual(t, state, login.SecurityState())

	promoted := base
	promoted.Role = entity.RoleModerator
	assert.NotEqual(t, state, promoted.SecurityState())

	edited := base
	edited.UpdatedAt = now.Add(time.Second)
	assert.NotEqual(t, state, edited.SecurityState())

	same := base
	assert.Equal(t, state, same.SecurityState())
}
