package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-review/internal/data/entity"
	"media-review/internal/dto/request"
	"media-review/pkg/utils"
)

func TestUpdateMeKeepsRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, _ := f.user("dave", entity.RoleModerator)

	resp, err := f.svc.User.UpdateMe(ctx, u.ID, &request.UpdateMeRequest{
		Bio:       utils.StringPtr("hello"),
		FirstName: utils.StringPtr("Dave"),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Bio)
	assert.Equal(t, entity.RoleModerator, resp.Role)

	stored, err := f.repo.User.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleModerator, stored.Role)
	assert.Equal(t, "Dave", stored.FirstName)
}

func TestUpdateMeRejectsTakenIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, _ := f.user("erin", entity.RoleUser)
	f.user("frank", entity.RoleUser)

	_, err := f.svc.User.UpdateMe(ctx, u.ID, &request.UpdateMeRequest{Username: utils.StringPtr("frank")})
	requireStatus(t, err, statusBadRequest)

	_, err = f.svc.User.UpdateMe(ctx, u.ID, &request.UpdateMeRequest{Email: utils.StringPtr("frank@example.com")})
	requireStatus(t, err, statusBadRequest)

	_, err = f.svc.User.UpdateMe(ctx, u.ID, &request.UpdateMeRequest{Username: utils.StringPtr("me")})
	requireStatus(t, err, statusBadRequest)
}

func TestAdminManagesUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.User.Create(ctx, &request.CreateUserRequest{
		Username: "gina",
		Email:    "gina@example.com",
		Role:     "moderator",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleModerator, created.Role)

	_, err = f.svc.User.Create(ctx, &request.CreateUserRequest{Username: "gina", Email: "x@example.com"})
	requireStatus(t, err, statusBadRequest)

	_, err = f.svc.User.Create(ctx, &request.CreateUserRequest{Username: "hank", Email: "hank@example.com", Role: "root"})
	requireStatus(t, err, statusBadRequest)

	updated, err := f.svc.User.Update(ctx, "gina", &request.UpdateUserRequest{Role: utils.StringPtr("admin")})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)

	got, err := f.svc.User.Get(ctx, "gina")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, got.Role)

	f.user("gino", entity.RoleUser)
	list, err := f.svc.User.List(ctx, &request.SearchRequest{
		PaginatedRequest: request.NewPaginatedRequest("1", "10"),
		Search:           "gin",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Pagination.Total)
	assert.Equal(t, "gina", list.Data[0].Username)

	require.NoError(t, f.svc.User.Delete(ctx, "gina"))
	_, err = f.svc.User.Get(ctx, "gina")
	requireStatus(t, err, statusNotFound)
	requireStatus(t, f.svc.User.Delete(ctx, "gina"), statusNotFound)
}
