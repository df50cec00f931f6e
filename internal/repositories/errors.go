package repositories

import (
	"errors"

	"github.com/lib/pq"
)

// ErrEmailTaken — уникальный индекс по email уже занят.
var ErrEmailTaken = errors.New("email already taken")

// isUniqueViolation — нарушение unique-констрейнта Postgres (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
