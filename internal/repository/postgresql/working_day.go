package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workingDayRepositoryImpl struct {
	db *database.DB
}

func NewWorkingDayRepository(db *database.DB) calendar.WorkingDayRepository {
	return &workingDayRepositoryImpl{db: db}
}

const workingDayColumns = `id, weekday, day_name, is_working_day, created_at, updated_at`

func scanWorkingDay(row pgx.Row) (calendar.WorkingDayConfig, error) {
	var c calendar.WorkingDayConfig
	err := row.Scan(&c.ID, &c.Weekday, &c.DayName, &c.IsWorkingDay, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List implements calendar.WorkingDayRepository.
func (r *workingDayRepositoryImpl) List(ctx context.Context) ([]calendar.WorkingDayConfig, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+workingDayColumns+` FROM working_days ORDER BY weekday ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list working days: %w", err)
	}
	defer rows.Close()

	results := make([]calendar.WorkingDayConfig, 0, 7)
	for rows.Next() {
		c, err := scanWorkingDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan working day: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// GetByWeekday implements calendar.WorkingDayRepository.
func (r *workingDayRepositoryImpl) GetByWeekday(ctx context.Context, weekday int) (calendar.WorkingDayConfig, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanWorkingDay(q.QueryRow(ctx, `SELECT `+workingDayColumns+` FROM working_days WHERE weekday = $1`, weekday))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.WorkingDayConfig{}, calendar.ErrWorkingDayNotFound
		}
		return calendar.WorkingDayConfig{}, fmt.Errorf("failed to get working day: %w", err)
	}
	return c, nil
}

// Create implements calendar.WorkingDayRepository.
func (r *workingDayRepositoryImpl) Create(ctx context.Context, config calendar.WorkingDayConfig) (calendar.WorkingDayConfig, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return calendar.WorkingDayConfig{}, err
	}

	query := `
		INSERT INTO working_days (id, weekday, day_name, is_working_day)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + workingDayColumns

	c, err := scanWorkingDay(q.QueryRow(ctx, query, id, config.Weekday, config.DayName, config.IsWorkingDay))
	if err != nil {
		if isUniqueViolation(err) {
			return calendar.WorkingDayConfig{}, calendar.ErrWorkingDayExists
		}
		return calendar.WorkingDayConfig{}, fmt.Errorf("failed to create working day: %w", err)
	}
	return c, nil
}

// SetWorkingDay implements calendar.WorkingDayRepository.
func (r *workingDayRepositoryImpl) SetWorkingDay(ctx context.Context, weekday int, isWorkingDay bool) (calendar.WorkingDayConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE working_days
		SET is_working_day = $1, updated_at = NOW()
		WHERE weekday = $2
		RETURNING ` + workingDayColumns

	c, err := scanWorkingDay(q.QueryRow(ctx, query, isWorkingDay, weekday))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.WorkingDayConfig{}, calendar.ErrWorkingDayNotFound
		}
		return calendar.WorkingDayConfig{}, fmt.Errorf("failed to update working day: %w", err)
	}
	return c, nil
}
