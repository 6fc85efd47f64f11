package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapConstraintError(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "reviews_title_author_key"}
	err := mapConstraintError(fmt.Errorf("insert: %w", unique))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "reviews_title_author_key")

	check := &pgconn.PgError{Code: pgerrcode.CheckViolation}
	assert.NotErrorIs(t, mapConstraintError(check), ErrDuplicate)

	plain := errors.New("boom")
	assert.Equal(t, plain, mapConstraintError(plain))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.True(t, isNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, isNoRows(errors.New("other")))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%ali%", containsPattern("ali"))
	assert.Equal(t, `%50\%\_off%`, containsPattern("50%_off"))
}
