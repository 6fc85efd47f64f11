package request

// TagRequest creates a category or a genre.
type TagRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

type TitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required,pastyear"`
	Description *string  `json:"description,omitempty"`
	Category    string   `json:"category" validate:"omitempty,max=50,slug"`
	Genre       []string `json:"genre" validate:"dive,max=50,slug"`
}

type TitleUpdateRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,max=256"`
	Year        *int      `json:"year,omitempty" validate:"omitempty,pastyear"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty" validate:"omitempty,max=50"`
	Genre       *[]string `json:"genre,omitempty" validate:"omitempty,dive,max=50,slug"`
}

type TitleFilterRequest struct {
	PaginatedRequest
	Category string
	Genre    string
	Name     string
	Year     int
}
