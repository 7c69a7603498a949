package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/focus/domain"
)

const uniqueViolation = "23505"

func nullDate(d *domain.Date) interface{} {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.Time
}

func dateFrom(t *time.Time) *domain.Date {
	if t == nil || t.IsZero() {
		return nil
	}
	d := domain.NewDate(*t)
	return &d
}

// constraintName returns the violated unique constraint, if any.
func constraintName(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 500
	}
	return limit
}
