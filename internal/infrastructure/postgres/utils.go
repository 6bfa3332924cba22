package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Fletes-api/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, pgUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return hasCode(err, pgForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// wrapWrite traduce violaciones de constraint a errores de dominio.
func wrapWrite(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrDuplicate, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrNotFound, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
