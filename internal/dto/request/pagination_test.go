package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"media-review/internal/dto/request"
)

func TestPaginatedRequest(t *testing.T) {
	tests := []struct {
		page, perPage string
		limit, offset int
	}{
		{"", "", 10, 0},
		{"1", "10", 10, 0},
		{"3", "20", 20, 40},
		{"2", "500", 100, 100},
		{"-1", "abc", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.page+"/"+tt.perPage, func(t *testing.T) {
			p := request.NewPaginatedRequest(tt.page, tt.perPage)
			assert.Equal(t, tt.limit, p.Limit())
			assert.Equal(t, tt.offset, p.Offset())
		})
	}
}
