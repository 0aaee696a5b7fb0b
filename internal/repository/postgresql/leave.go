package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveSelect = `
	SELECT l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.reason, l.status,
		l.processed_by, l.processed_at, l.created_at, l.updated_at,
		COALESCE(e.first_name || ' ' || e.last_name, '')
	FROM leaves l
	LEFT JOIN employees e ON e.id = l.employee_id`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var (
		l      leave.Leave
		status string
	)
	err := row.Scan(
		&l.ID,
		&l.EmployeeID,
		&l.LeaveType,
		&l.StartDate,
		&l.EndDate,
		&l.Reason,
		&status,
		&l.ProcessedBy,
		&l.ProcessedAt,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.EmployeeName,
	)
	if err != nil {
		return leave.Leave{}, err
	}
	l.Status = leave.Status(status)
	l.StartDate = dateOnly(l.StartDate)
	l.EndDate = dateOnly(l.EndDate)
	return l, nil
}

func (r *leaveRepositoryImpl) query(ctx context.Context, query string, args ...any) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	results := make([]leave.Leave, 0)
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.Leave{}, err
	}

	status := l.Status
	if status == "" {
		status = leave.StatusPending
	}

	query := `
		INSERT INTO leaves (id, employee_id, leave_type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = q.Exec(ctx, query, id, l.EmployeeID, l.LeaveType, dateOnly(l.StartDate), dateOnly(l.EndDate), l.Reason, string(status))
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	if !validator.IsValidUUID(id) {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, leaveSelect+` WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}
	return l, nil
}

// Update implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Update(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	if !validator.IsValidUUID(l.ID) {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET leave_type = $1, start_date = $2, end_date = $3, reason = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query, l.LeaveType, dateOnly(l.StartDate), dateOnly(l.EndDate), l.Reason, l.ID)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to update leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}

	return r.GetByID(ctx, l.ID)
}

// UpdateStatus implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, processedBy *string, processedAt time.Time) (leave.Leave, error) {
	if !validator.IsValidUUID(id) {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $1, processed_by = $2, processed_at = $3, updated_at = NOW()
		WHERE id = $4 AND status = 'pending'
	`
	tag, err := q.Exec(ctx, query, string(status), processedBy, processedAt, id)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to update leave status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Either the leave is gone or someone processed it first.
		if _, err := r.GetByID(ctx, id); err != nil {
			return leave.Leave{}, err
		}
		return leave.Leave{}, leave.ErrLeaveAlreadyProcessed
	}

	return r.GetByID(ctx, id)
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return leave.ErrLeaveNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leaves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, error) {
	if filter.EmployeeID != nil && !validator.IsValidUUID(*filter.EmployeeID) {
		return []leave.Leave{}, nil
	}
	var conditions []string
	var args []any
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("l.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("l.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("l.start_date >= $%d", argIdx))
		args = append(args, dateOnly(*filter.From))
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("l.end_date <= $%d", argIdx))
		args = append(args, dateOnly(*filter.To))
		argIdx++
	}

	query := leaveSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY l.start_date DESC, l.created_at DESC"

	return r.query(ctx, query, args...)
}

// HasOverlap implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	if !validator.IsValidUUID(employeeID) {
		return false, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leaves
			WHERE employee_id = $1
				AND status <> 'rejected'
				AND start_date <= $3 AND end_date >= $2
				AND ($4::uuid IS NULL OR id <> $4::uuid)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, dateOnly(start), dateOnly(end), excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}

// FindApprovedCovering implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) FindApprovedCovering(ctx context.Context, employeeID string, date time.Time) (*leave.Leave, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := leaveSelect + `
		WHERE l.employee_id = $1 AND l.status = 'approved' AND $2 BETWEEN l.start_date AND l.end_date
		ORDER BY l.start_date ASC
		LIMIT 1`

	l, err := scanLeave(q.QueryRow(ctx, query, employeeID, dateOnly(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find covering leave: %w", err)
	}
	return &l, nil
}

// ListApprovedBetween implements leave.LeaveRepository. It returns approved
// leaves that intersect [start, end].
func (r *leaveRepositoryImpl) ListApprovedBetween(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Leave, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, nil
	}
	query := leaveSelect + `
		WHERE l.employee_id = $1 AND l.status = 'approved' AND l.start_date <= $3 AND l.end_date >= $2
		ORDER BY l.start_date ASC`

	return r.query(ctx, query, employeeID, dateOnly(start), dateOnly(end))
}
