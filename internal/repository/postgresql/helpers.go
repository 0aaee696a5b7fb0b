package postgresql

import (
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/timeofday"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// TIME columns travel as pgtype.Time.

func pgTime(t timeofday.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: t.Duration().Microseconds(), Valid: true}
}

func pgTimePtr(t *timeofday.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgTime(*t)
}

func fromPGTime(t pgtype.Time) (timeofday.TimeOfDay, error) {
	return timeofday.FromDuration(time.Duration(t.Microseconds) * time.Microsecond)
}

func fromPGTimePtr(t pgtype.Time) (*timeofday.TimeOfDay, error) {
	if !t.Valid {
		return nil, nil
	}
	v, err := fromPGTime(t)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// DATE columns come back as UTC midnight; normalise anything else the driver hands us.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
