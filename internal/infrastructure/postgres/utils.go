package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation informa si err corresponde a una violación de
// constraint UNIQUE de Postgres (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// Algunos poolers envuelven el error y se pierde el tipo pgconn.
	return err != nil && strings.Contains(err.Error(), "23505")
}
