package response

import (
	"github.com/google/uuid"

	"media-review/internal/data/entity"
)

type TagResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func CategoryToResponse(c *entity.Category) TagResponse {
	return TagResponse{Name: c.Name, Slug: c.Slug}
}

func GenreToResponse(g *entity.Genre) TagResponse {
	return TagResponse{Name: g.Name, Slug: g.Slug}
}

// TitleResponse is the read schema. Rating is null until the title has a review.
type TitleResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Year        int           `json:"year"`
	Rating      *int          `json:"rating"`
	Description *string       `json:"description"`
	Genre       []TagResponse `json:"genre"`
	Category    *TagResponse  `json:"category"`
}

func TitleToResponse(t *entity.Title, category *entity.Category, genres []*entity.Genre, rating *int) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      rating,
		Description: t.Description,
		Genre:       make([]TagResponse, 0, len(genres)),
	}

	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}
	for _, g := range genres {
		resp.Genre = append(resp.Genre, GenreToResponse(g))
	}

	return resp
}
