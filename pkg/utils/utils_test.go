package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-review/pkg/apperr"
	"media-review/pkg/utils"
)

type signup struct {
	Username string `json:"username" validate:"required,max=150,handle,notme"`
	Slug     string `json:"slug" validate:"omitempty,slug"`
	Year     int    `json:"year" validate:"omitempty,pastyear"`
}

func TestValidateStruct(t *testing.T) {
	nextYear := time.Now().Year() + 1

	tests := []struct {
		name  string
		input signup
		field string
	}{
		{"valid", signup{Username: "jane.doe+1@x", Slug: "sci-fi_2", Year: 1999}, ""},
		{"missing username", signup{}, "username"},
		{"reserved handle", signup{Username: "me"}, "username"},
		{"bad handle", signup{Username: "jane doe"}, "username"},
		{"bad slug", signup{Username: "jane", Slug: "sci fi"}, "slug"},
		{"future year", signup{Username: "jane", Year: nextYear}, "year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := utils.ValidateStruct(tt.input)
			if tt.field == "" {
				assert.Empty(t, errs)
				return
			}
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestValidateWrapsAppError(t *testing.T) {
	err := utils.Validate(signup{Username: "me"})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	assert.Contains(t, apperr.As(err).Details["username"], "reserved")

	assert.NoError(t, utils.Validate(signup{Username: "jane"}))
}

func TestPaginationHelpers(t *testing.T) {
	assert.Equal(t, 0, utils.CalculateTotalPages(0, 10))
	assert.Equal(t, 1, utils.CalculateTotalPages(10, 10))
	assert.Equal(t, 2, utils.CalculateTotalPages(11, 10))
	assert.Equal(t, 0, utils.CalculateTotalPages(5, 0))

	assert.Equal(t, 0, utils.CalculateOffset(1, 10))
	assert.Equal(t, 20, utils.CalculateOffset(3, 10))
	assert.Equal(t, 0, utils.CalculateOffset(0, 10))
}

func TestResponseError(t *testing.T) {
	rec := httptest.NewRecorder()
	utils.ResponseError(rec, apperr.Unauthenticated("login first"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"status":false,"message":"login first","code":"UNAUTHENTICATED"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	utils.ResponseError(rec, apperr.Validation("bad", map[string]string{"slug": "taken"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"bad","code":"VALIDATION_ERROR","errors":{"slug":"taken"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	utils.ResponseError(rec, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
