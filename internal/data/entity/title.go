package entity

import (
	"github.com/google/uuid"
)

type Title struct {
	Base
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`
}

type TitleGenre struct {
	TitleID uuid.UUID `db:"title_id"`
	GenreID uuid.UUID `db:"genre_id"`
}

// TitleFilter narrows a title listing. Empty fields are ignored.
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}
