package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.date, a.time_in, a.time_out, a.status, a.description,
		a.created_at, a.updated_at,
		COALESCE(e.first_name || ' ' || e.last_name, '')
	FROM attendances a
	LEFT JOIN employees e ON e.id = a.employee_id`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att     attendance.Attendance
		timeIn  pgtype.Time
		timeOut pgtype.Time
		status  string
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &timeIn, &timeOut, &status, &att.Description,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	att.Date = dateOnly(att.Date)
	att.Status = attendance.Status(status)
	if att.TimeIn, err = fromPGTimePtr(timeIn); err != nil {
		return attendance.Attendance{}, err
	}
	if att.TimeOut, err = fromPGTimePtr(timeOut); err != nil {
		return attendance.Attendance{}, err
	}
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := newID()
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		INSERT INTO attendances (id, employee_id, date, time_in, time_out, status, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id,
		newAttendance.EmployeeID,
		dateOnly(newAttendance.Date),
		pgTimePtr(newAttendance.TimeIn),
		pgTimePtr(newAttendance.TimeOut),
		string(newAttendance.Status),
		newAttendance.Description,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	newAttendance.ID = id
	newAttendance.Date = dateOnly(newAttendance.Date)
	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if !validator.IsValidUUID(id) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, nil
	}
	q := GetQuerier(ctx, a.db)

	query := attendanceSelect + `
		WHERE a.employee_id = $1 AND a.date = $2
		ORDER BY a.created_at ASC
		LIMIT 1`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, dateOnly(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by date: %w", err)
	}
	return &att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	if filter.EmployeeID != nil && !validator.IsValidUUID(*filter.EmployeeID) {
		return []attendance.Attendance{}, nil
	}
	q := GetQuerier(ctx, a.db)

	var conditions []string
	var args []any
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, dateOnly(*filter.From))
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, dateOnly(*filter.To))
		argIdx++
	}

	query := attendanceSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.date ASC, e.first_name ASC, e.last_name ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	results := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		results = append(results, att)
	}
	return results, rows.Err()
}

// ExistingDates implements attendance.AttendanceRepository.
func (a *attendanceRepository) ExistingDates(ctx context.Context, employeeID string, start, end time.Time) ([]time.Time, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, nil
	}
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT DISTINCT date FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, dateOnly(start), dateOnly(end))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance dates: %w", err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan attendance date: %w", err)
		}
		dates = append(dates, dateOnly(d))
	}
	return dates, rows.Err()
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if !validator.IsValidUUID(att.ID) {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET date = $1, time_in = $2, time_out = $3, status = $4, description = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		dateOnly(att.Date),
		pgTimePtr(att.TimeIn),
		pgTimePtr(att.TimeOut),
		string(att.Status),
		att.Description,
		att.ID,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	return a.GetByID(ctx, att.ID)
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
