package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"media-review/internal/data/entity"
)

func TestBuildFilter(t *testing.T) {
	where, args := buildFilter(entity.TitleFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = buildFilter(entity.TitleFilter{
		CategorySlug: "movie",
		GenreSlug:    "drama",
		Name:         "god",
		Year:         1972,
	})

	assert.Contains(t, where, "slug = $1")
	assert.Contains(t, where, "g.slug = $2")
	assert.Contains(t, where, "t.name ILIKE $3")
	assert.Contains(t, where, "t.year = $4")
	assert.Equal(t, []any{"movie", "drama", "%god%", 1972}, args)

	where, args = buildFilter(entity.TitleFilter{Year: 2001})
	assert.Equal(t, " WHERE t.year = $1", where)
	assert.Equal(t, []any{2001}, args)
}
