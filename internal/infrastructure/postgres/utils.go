package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados por los repositorios.
const (
	codeUniqueViolation = "23505"
	codeUndefinedTable  = "42P01"
)

// pgCode devuelve el SQLSTATE del error, o "" si no viene de PostgreSQL.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isUndefinedTable indica que el esquema no fue creado (EnsureSchema no se ejecutó).
func isUndefinedTable(err error) bool {
	return pgCode(err) == codeUndefinedTable
}
