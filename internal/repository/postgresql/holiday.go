package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

const holidayColumns = `id, name, date, description, type, is_paid, created_at, updated_at`

func scanHoliday(row pgx.Row) (calendar.Holiday, error) {
	var h calendar.Holiday
	if err := row.Scan(&h.ID, &h.Name, &h.Date, &h.Description, &h.Type, &h.IsPaid, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return calendar.Holiday{}, err
	}
	h.Date = dateOnly(h.Date)
	return h, nil
}

func (r *holidayRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]calendar.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	results := make([]calendar.Holiday, 0)
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		results = append(results, h)
	}
	return results, rows.Err()
}

// List implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]calendar.Holiday, error) {
	return r.list(ctx, `SELECT `+holidayColumns+` FROM holidays ORDER BY date ASC`)
}

// ListBetween implements calendar.HolidayRepository. Both bounds are inclusive.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, start, end time.Time) ([]calendar.Holiday, error) {
	return r.list(ctx, `SELECT `+holidayColumns+` FROM holidays WHERE date BETWEEN $1 AND $2 ORDER BY date ASC`,
		dateOnly(start), dateOnly(end))
}

// GetByID implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (calendar.Holiday, error) {
	if !validator.IsValidUUID(id) {
		return calendar.Holiday{}, calendar.ErrHolidayNotFound
	}
	q := GetQuerier(ctx, r.db)

	h, err := scanHoliday(q.QueryRow(ctx, `SELECT `+holidayColumns+` FROM holidays WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.Holiday{}, calendar.ErrHolidayNotFound
		}
		return calendar.Holiday{}, fmt.Errorf("failed to get holiday: %w", err)
	}
	return h, nil
}

// GetByDate implements calendar.HolidayRepository. With several holidays on
// one date the earliest created wins.
func (r *holidayRepositoryImpl) GetByDate(ctx context.Context, date time.Time) (calendar.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE date = $1 ORDER BY created_at ASC LIMIT 1`

	h, err := scanHoliday(q.QueryRow(ctx, query, dateOnly(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.Holiday{}, calendar.ErrHolidayNotFound
		}
		return calendar.Holiday{}, fmt.Errorf("failed to get holiday by date: %w", err)
	}
	return h, nil
}

// Create implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h calendar.Holiday) (calendar.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return calendar.Holiday{}, err
	}

	query := `
		INSERT INTO holidays (id, name, date, description, type, is_paid)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + holidayColumns

	result, err := scanHoliday(q.QueryRow(ctx, query, id, h.Name, dateOnly(h.Date), h.Description, h.Type, h.IsPaid))
	if err != nil {
		return calendar.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return result, nil
}

// Update implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h calendar.Holiday) (calendar.Holiday, error) {
	if !validator.IsValidUUID(h.ID) {
		return calendar.Holiday{}, calendar.ErrHolidayNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE holidays
		SET name = $1, date = $2, description = $3, type = $4, is_paid = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + holidayColumns

	result, err := scanHoliday(q.QueryRow(ctx, query, h.Name, dateOnly(h.Date), h.Description, h.Type, h.IsPaid, h.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.Holiday{}, calendar.ErrHolidayNotFound
		}
		return calendar.Holiday{}, fmt.Errorf("failed to update holiday: %w", err)
	}
	return result, nil
}

// Delete implements calendar.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return calendar.ErrHolidayNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return calendar.ErrHolidayNotFound
	}
	return nil
}
