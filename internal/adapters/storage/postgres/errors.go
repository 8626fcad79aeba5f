package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Índices únicos con significado de dominio (ver migrations).
const (
	constraintActiveApplication = "applications_active_unique"
	constraintActiveSlot        = "appointments_active_slot"
	constraintShelterOwner      = "shelters_owner_user_id_key"
)

// isUniqueViolation dice si err es un 23505 sobre constraint ("" = cualquiera).
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeForeignKeyViolation
	}
	return false
}
