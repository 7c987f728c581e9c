package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin with this email already exists")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrDuplicateTicket    = errors.New("ticket number already taken")
	ErrProductNotFound    = errors.New("product not found")
	ErrServiceNotFound    = errors.New("service not found")
	ErrDuplicateSlug      = errors.New("a service with this slug already exists")
	ErrLabPageNotFound    = errors.New("lab page not found")
	ErrNewsNotFound       = errors.New("news article not found")
)

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation,
// optionally on a specific constraint name.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
