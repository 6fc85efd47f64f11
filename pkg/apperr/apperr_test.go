package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-review/pkg/apperr"
)

func TestConstructors_MapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"validation", apperr.Validation("bad input", nil), http.StatusBadRequest, apperr.CodeValidation},
		{"not_found", apperr.NotFound("title"), http.StatusNotFound, apperr.CodeNotFound},
		{"unauthenticated", apperr.Unauthenticated("login required"), http.StatusUnauthorized, apperr.CodeUnauthenticated},
		{"forbidden", apperr.Forbidden("no"), http.StatusForbidden, apperr.CodeForbidden},
		{"unavailable", apperr.Unavailable("mail down", errors.New("dial")), http.StatusServiceUnavailable, apperr.CodeUnavailable},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestAs_FindsWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("create review: %w", apperr.Validation("duplicate review", nil))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "duplicate review", ae.Message)
	assert.True(t, apperr.IsCode(wrapped, apperr.CodeValidation))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "review not found", apperr.NotFound("review").Error())
}
