package access_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"media-review/internal/access"
	"media-review/internal/data/entity"
	"media-review/pkg/apperr"
	"media-review/pkg/utils"
)

func subject(role entity.Role, superuser bool) access.Subject {
	return access.Subject{ID: uuid.New(), Authenticated: true, Role: role, Superuser: superuser}
}

var (
	anon      = access.Anonymous()
	user      = subject(entity.RoleUser, false)
	moderator = subject(entity.RoleModerator, false)
	admin     = subject(entity.RoleAdmin, false)
	superuser = subject(entity.RoleUser, true)
)

func TestCheckPermissionCatalog(t *testing.T) {
	tests := []struct {
		name     string
		subject  access.Subject
		resource access.Resource
		action   access.Action
		want     access.Decision
	}{
		{"anon lists categories", anon, access.ResourceCategory, access.ActionList, access.Allow},
		{"anon creates category", anon, access.ResourceCategory, access.ActionCreate, access.DenyUnauthenticated},
		{"user creates category", user, access.ResourceCategory, access.ActionCreate, access.DenyForbidden},
		{"moderator deletes genre", moderator, access.ResourceGenre, access.ActionDestroy, access.DenyForbidden},
		{"admin creates genre", admin, access.ResourceGenre, access.ActionCreate, access.Allow},
		{"superuser deletes category", superuser, access.ResourceCategory, access.ActionDestroy, access.Allow},
		{"admin cannot update category", admin, access.ResourceCategory, access.ActionUpdate, access.DenyForbidden},
		{"anon retrieves title", anon, access.ResourceTitle, access.ActionRetrieve, access.Allow},
		{"user patches title", user, access.ResourceTitle, access.ActionPartialUpdate, access.DenyForbidden},
		{"admin deletes title", admin, access.ResourceTitle, access.ActionDestroy, access.Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.CheckPermission(tt.subject, tt.resource, tt.action))
		})
	}
}

func TestCheckPermissionAccounts(t *testing.T) {
	assert.Equal(t, access.DenyUnauthenticated, access.CheckPermission(anon, access.ResourceAccount, access.ActionList))
	assert.Equal(t, access.DenyForbidden, access.CheckPermission(moderator, access.ResourceAccount, access.ActionList))
	assert.Equal(t, access.Allow, access.CheckPermission(admin, access.ResourceAccount, access.ActionDestroy))
	assert.Equal(t, access.Allow, access.CheckPermission(superuser, access.ResourceAccount, access.ActionCreate))

	assert.Equal(t, access.DenyUnauthenticated, access.CheckPermission(anon, access.ResourceSelf, access.ActionRetrieve))
	assert.Equal(t, access.Allow, access.CheckPermission(user, access.ResourceSelf, access.ActionPartialUpdate))
	assert.Equal(t, access.DenyForbidden, access.CheckPermission(user, access.ResourceSelf, access.ActionDestroy))
}

func TestReviewAndCommentOwnership(t *testing.T) {
	author := subject(entity.RoleUser, false)

	for _, resource := range []access.Resource{access.ResourceReview, access.ResourceComment} {
		t.Run(string(resource), func(t *testing.T) {
			assert.Equal(t, access.Allow, access.CheckPermission(anon, resource, access.ActionList))
			assert.Equal(t, access.DenyUnauthenticated, access.CheckPermission(anon, resource, access.ActionCreate))
			assert.Equal(t, access.Allow, access.CheckPermission(user, resource, access.ActionCreate))

			// collection level lets any authenticated caller through to the object check
			assert.Equal(t, access.Allow, access.CheckPermission(user, resource, access.ActionPartialUpdate))

			for _, action := range []access.Action{access.ActionUpdate, access.ActionPartialUpdate, access.ActionDestroy} {
				assert.Equal(t, access.Allow, access.CheckObjectPermission(author, resource, action, author.ID))
				assert.Equal(t, access.Allow, access.CheckObjectPermission(moderator, resource, action, author.ID))
				assert.Equal(t, access.Allow, access.CheckObjectPermission(admin, resource, action, author.ID))
				assert.Equal(t, access.Allow, access.CheckObjectPermission(superuser, resource, action, author.ID))
				assert.Equal(t, access.DenyForbidden, access.CheckObjectPermission(user, resource, action, author.ID))
				assert.Equal(t, access.DenyUnauthenticated, access.CheckObjectPermission(anon, resource, action, author.ID))
			}
		})
	}
}

func TestUnknownRoleGetsNoStaffRights(t *testing.T) {
	rogue := subject(entity.Role("root"), false)
	assert.Equal(t, access.DenyForbidden, access.CheckPermission(rogue, access.ResourceTitle, access.ActionCreate))
	assert.Equal(t, access.DenyForbidden, access.CheckObjectPermission(rogue, access.ResourceReview, access.ActionDestroy, uuid.New()))
}

func TestUnlistedIsDenied(t *testing.T) {
	assert.Equal(t, access.Nobody, access.AudienceFor(access.Resource("unknown"), access.ActionList))
	assert.Equal(t, access.DenyForbidden, access.CheckPermission(admin, access.Resource("unknown"), access.ActionList))
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, access.Allow.Err())
	assert.Equal(t, http.StatusUnauthorized, apperr.As(access.DenyUnauthenticated.Err()).HTTPStatus)
	assert.Equal(t, http.StatusForbidden, apperr.As(access.DenyForbidden.Err()).HTTPStatus)
}

func TestSubjectFromContext(t *testing.T) {
	assert.Equal(t, anon, access.SubjectFromContext(context.Background()))

	id := uuid.New()
	ctx := utils.SetUserContext(context.Background(), id, "moderator", false)
	s := access.SubjectFromContext(ctx)
	assert.True(t, s.Authenticated)
	assert.Equal(t, id, s.ID)
	assert.True(t, s.IsModerator())
	assert.False(t, s.IsAdmin())
}
