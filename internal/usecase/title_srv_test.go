package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-review/internal/dto/request"
	"media-review/pkg/utils"
)

func seedCatalog(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	for _, c := range []request.TagRequest{{Name: "Movie", Slug: "movie"}, {Name: "Book", Slug: "book"}} {
		_, err := f.svc.Category.Create(ctx, &c)
		require.NoError(t, err)
	}
	for _, g := range []request.TagRequest{{Name: "Drama", Slug: "drama"}, {Name: "Comedy", Slug: "comedy"}} {
		_, err := f.svc.Genre.Create(ctx, &g)
		require.NoError(t, err)
	}
}

func TestTitleCreateAndRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedCatalog(t, f)

	created, err := f.svc.Title.Create(ctx, &request.TitleRequest{
		Name:        "The Godfather",
		Year:        1972,
		Description: utils.StringPtr("crime saga"),
		Category:    "movie",
		Genre:       []string{"drama", "comedy", "drama"},
	})
	require.NoError(t, err)

	assert.Nil(t, created.Rating)
	require.NotNil(t, created.Category)
	assert.Equal(t, "movie", created.Category.Slug)
	require.Len(t, created.Genre, 2)
	assert.Equal(t, "comedy", created.Genre[0].Slug)

	got, err := f.svc.Title.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = f.svc.Title.Get(ctx, uuid.New())
	requireStatus(t, err, statusNotFound)
}

func TestTitleValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedCatalog(t, f)

	tests := []struct {
		name  string
		req   request.TitleRequest
		field string
	}{
		{"future year", request.TitleRequest{Name: "Later", Year: 9999}, "year"},
		{"zero year", request.TitleRequest{Name: "Never"}, "year"},
		{"unknown category", request.TitleRequest{Name: "X", Year: 2000, Category: "opera"}, "category"},
		{"unknown genre", request.TitleRequest{Name: "X", Year: 2000, Genre: []string{"drama", "horror"}}, "genre"},
		{"missing name", request.TitleRequest{Year: 2000}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Title.Create(ctx, &tt.req)
			ae := requireStatus(t, err, statusBadRequest)
			assert.Contains(t, ae.Details, tt.field)
		})
	}
}

func TestTitleUpdateAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedCatalog(t, f)

	a, err := f.svc.Title.Create(ctx, &request.TitleRequest{Name: "Alpha", Year: 2001, Category: "movie", Genre: []string{"drama"}})
	require.NoError(t, err)
	_, err = f.svc.Title.Create(ctx, &request.TitleRequest{Name: "Beta", Year: 2002, Category: "book", Genre: []string{"comedy"}})
	require.NoError(t, err)

	list := func(filter request.TitleFilterRequest) []string {
		filter.PaginatedRequest = request.NewPaginatedRequest("", "")
		resp, err := f.svc.Title.List(ctx, &filter)
		require.NoError(t, err)
		var names []string
		for _, title := range resp.Data {
			names = append(names, title.Name)
		}
		return names
	}

	assert.Equal(t, []string{"Alpha", "Beta"}, list(request.TitleFilterRequest{}))
	assert.Equal(t, []string{"Alpha"}, list(request.TitleFilterRequest{Category: "movie"}))
	assert.Equal(t, []string{"Beta"}, list(request.TitleFilterRequest{Genre: "comedy"}))
	assert.Equal(t, []string{"Beta"}, list(request.TitleFilterRequest{Year: 2002}))
	assert.Equal(t, []string{"Alpha"}, list(request.TitleFilterRequest{Name: "alp"}))
	assert.Empty(t, list(request.TitleFilterRequest{Genre: "horror"}))

	genres := []string{"comedy"}
	updated, err := f.svc.Title.Update(ctx, a.ID, &request.TitleUpdateRequest{
		Name:     utils.StringPtr("Alpha Prime"),
		Category: strPtr(""),
		Genre:    &genres,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alpha Prime", updated.Name)
	assert.Nil(t, updated.Category)
	require.Len(t, updated.Genre, 1)
	assert.Equal(t, "comedy", updated.Genre[0].Slug)
	assert.Equal(t, 2001, updated.Year)

	assert.Equal(t, []string{"Alpha Prime", "Beta"}, list(request.TitleFilterRequest{Genre: "comedy"}))

	// category deletion keeps the title
	require.NoError(t, f.svc.Category.Delete(ctx, "book"))
	assert.Equal(t, []string{"Alpha Prime", "Beta"}, list(request.TitleFilterRequest{}))

	require.NoError(t, f.svc.Title.Delete(ctx, a.ID))
	requireStatus(t, f.svc.Title.Delete(ctx, a.ID), statusNotFound)
}
