package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

const scheduleColumns = `s.id, s.name, s.time_in, s.time_out, s.created_at, s.updated_at,
	(SELECT COUNT(*) FROM employees e WHERE e.schedule_id = s.id)`

func scanSchedule(row pgx.Row) (schedule.Schedule, error) {
	var (
		s       schedule.Schedule
		timeIn  pgtype.Time
		timeOut pgtype.Time
	)
	if err := row.Scan(&s.ID, &s.Name, &timeIn, &timeOut, &s.CreatedAt, &s.UpdatedAt, &s.EmployeeCount); err != nil {
		return schedule.Schedule{}, err
	}

	var err error
	if s.TimeIn, err = fromPGTime(timeIn); err != nil {
		return schedule.Schedule{}, err
	}
	if s.TimeOut, err = fromPGTime(timeOut); err != nil {
		return schedule.Schedule{}, err
	}
	return s, nil
}

// Create implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return schedule.Schedule{}, err
	}

	query := `
		WITH s AS (
			INSERT INTO schedules (id, name, time_in, time_out)
			VALUES ($1, $2, $3, $4)
			RETURNING *
		)
		SELECT ` + scheduleColumns + ` FROM s`

	result, err := scanSchedule(q.QueryRow(ctx, query, id, s.Name, pgTime(s.TimeIn), pgTime(s.TimeOut)))
	if err != nil {
		if isUniqueViolation(err) {
			return schedule.Schedule{}, schedule.ErrScheduleNameExists
		}
		return schedule.Schedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}
	return result, nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	if !validator.IsValidUUID(id) {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleColumns + ` FROM schedules s WHERE s.id = $1`

	result, err := scanSchedule(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}
	return result, nil
}

// List implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) List(ctx context.Context) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + scheduleColumns + ` FROM schedules s ORDER BY s.time_in ASC, s.name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	results := make([]schedule.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

// ExistsByName implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM schedules WHERE LOWER(name) = LOWER($1) AND ($2::uuid IS NULL OR id <> $2::uuid))`

	var exists bool
	if err := q.QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check schedule name: %w", err)
	}
	return exists, nil
}

// Update implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Update(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	if !validator.IsValidUUID(s.ID) {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		WITH s AS (
			UPDATE schedules
			SET name = $1, time_in = $2, time_out = $3, updated_at = NOW()
			WHERE id = $4
			RETURNING *
		)
		SELECT ` + scheduleColumns + ` FROM s`

	result, err := scanSchedule(q.QueryRow(ctx, query, s.Name, pgTime(s.TimeIn), pgTime(s.TimeOut), s.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		if isUniqueViolation(err) {
			return schedule.Schedule{}, schedule.ErrScheduleNameExists
		}
		return schedule.Schedule{}, fmt.Errorf("failed to update schedule: %w", err)
	}
	return result, nil
}

// Delete implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return schedule.ErrScheduleNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}
