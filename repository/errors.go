package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned by updates and deletes that affected no rows.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken is returned when nombre_usuario already exists.
	ErrUsernameTaken = errors.New("username already in use")
	// ErrInvalidAccessCode is returned when a registration code is not provisioned.
	ErrInvalidAccessCode = errors.New("invalid access code")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// affectedOrNotFound turns a zero row count into ErrNotFound.
func affectedOrNotFound(n int64) error {
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
