package request

import "media-review/pkg/utils"

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// NewPaginatedRequest reads page and per_page, falling back to defaults on bad input.
func NewPaginatedRequest(page, perPage string) PaginatedRequest {
	return PaginatedRequest{
		Page:    utils.ParseInt(page, 1),
		PerPage: utils.ParseInt(perPage, DefaultPerPage),
	}
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		return MaxPerPage
	}
	return p.PerPage
}

// SearchRequest is a paginated listing with an optional name search.
type SearchRequest struct {
	PaginatedRequest
	Search string `json:"search"`
}
