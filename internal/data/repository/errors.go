package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicate wraps unique constraint violations.
	ErrDuplicate = errors.New("duplicate key")
	// ErrNotFound is returned by writes that matched no row.
	ErrNotFound = errors.New("record not found")
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// mapConstraintError turns a unique violation into ErrDuplicate, keeping the
// constraint name in the message. Other errors pass through unchanged.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

// containsPattern builds an ILIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
