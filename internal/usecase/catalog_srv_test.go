package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-review/internal/dto/request"
)

func TestCategoryLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Category.Create(ctx, &request.TagRequest{Name: "Movie", Slug: "movie"})
	require.NoError(t, err)
	assert.Equal(t, "movie", created.Slug)

	_, err = f.svc.Category.Create(ctx, &request.TagRequest{Name: "Film", Slug: "movie"})
	ae := requireStatus(t, err, statusBadRequest)
	assert.Contains(t, ae.Details, "slug")

	_, err = f.svc.Category.Create(ctx, &request.TagRequest{Name: "Bad", Slug: "not a slug"})
	requireStatus(t, err, statusBadRequest)

	_, err = f.svc.Category.Create(ctx, &request.TagRequest{Name: "Book", Slug: "book"})
	require.NoError(t, err)

	list, err := f.svc.Category.List(ctx, &request.SearchRequest{PaginatedRequest: request.NewPaginatedRequest("", "")})
	require.NoError(t, err)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "book", list.Data[0].Slug)

	list, err = f.svc.Category.List(ctx, &request.SearchRequest{PaginatedRequest: request.NewPaginatedRequest("", ""), Search: "mov"})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)

	require.NoError(t, f.svc.Category.Delete(ctx, "movie"))
	requireStatus(t, f.svc.Category.Delete(ctx, "movie"), statusNotFound)
}

func TestGenreLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Genre.Create(ctx, &request.TagRequest{Name: "Drama", Slug: "drama"})
	require.NoError(t, err)

	_, err = f.svc.Genre.Create(ctx, &request.TagRequest{Name: "Drama 2", Slug: "drama"})
	requireStatus(t, err, statusBadRequest)

	list, err := f.svc.Genre.List(ctx, &request.SearchRequest{PaginatedRequest: request.NewPaginatedRequest("", "")})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Pagination.Total)

	require.NoError(t, f.svc.Genre.Delete(ctx, "drama"))
	requireStatus(t, f.svc.Genre.Delete(ctx, "drama"), statusNotFound)
}
