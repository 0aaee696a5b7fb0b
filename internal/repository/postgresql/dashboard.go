package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountEmployees returns total, active and inactive in a single query.
func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context) (dashboard.EmployeeSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'active') AS active_count,
			COUNT(*) FILTER (WHERE status = 'inactive') AS inactive_count
		FROM employees
	`

	var stats dashboard.EmployeeSummary
	if err := q.QueryRow(ctx, query).Scan(&stats.Total, &stats.Active, &stats.Inactive); err != nil {
		return dashboard.EmployeeSummary{}, fmt.Errorf("failed to count employees: %w", err)
	}
	return stats, nil
}

func (r *dashboardRepositoryImpl) count(ctx context.Context, what, query string, args ...any) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", what, err)
	}
	return n, nil
}

func (r *dashboardRepositoryImpl) CountDepartments(ctx context.Context) (int64, error) {
	return r.count(ctx, "departments", `SELECT COUNT(*) FROM departments`)
}

func (r *dashboardRepositoryImpl) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, "users", `SELECT COUNT(*) FROM users`)
}

// CountAttendanceByStatus breaks the rows of one day down by status.
func (r *dashboardRepositoryImpl) CountAttendanceByStatus(ctx context.Context, date time.Time) (dashboard.AttendanceSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COUNT(*) FILTER (WHERE status = 'leave'),
			COUNT(*) FILTER (WHERE status = 'holiday'),
			COUNT(*) FILTER (WHERE status = 'weekend'),
			COUNT(*)
		FROM attendances
		WHERE date = $1
	`

	var s dashboard.AttendanceSummary
	err := q.QueryRow(ctx, query, dateOnly(date)).Scan(
		&s.Present, &s.Absent, &s.Leave, &s.Holiday, &s.Weekend, &s.Recorded,
	)
	if err != nil {
		return dashboard.AttendanceSummary{}, fmt.Errorf("failed to count attendance: %w", err)
	}
	return s, nil
}

func (r *dashboardRepositoryImpl) CountLeaves(ctx context.Context, status leave.Status, employeeID *string, since *time.Time) (int64, error) {
	var sinceDate *time.Time
	if since != nil {
		d := dateOnly(*since)
		sinceDate = &d
	}

	query := `
		SELECT COUNT(*) FROM leaves
		WHERE status = $1
			AND ($2::uuid IS NULL OR employee_id = $2::uuid)
			AND ($3::date IS NULL OR start_date >= $3::date)
	`
	return r.count(ctx, "leaves", query, string(status), employeeID, sinceDate)
}

// SumPayroll totals the net salary of one month.
func (r *dashboardRepositoryImpl) SumPayroll(ctx context.Context, month, year int) (dashboard.PayrollSummary, error) {
	q := GetQuerier(ctx, r.db)

	s := dashboard.PayrollSummary{Month: month, Year: year}
	err := q.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(net_salary), 0) FROM payrolls WHERE month = $1 AND year = $2`,
		month, year,
	).Scan(&s.Count, &s.TotalNet)
	if err != nil {
		return dashboard.PayrollSummary{}, fmt.Errorf("failed to sum payroll: %w", err)
	}
	return s, nil
}

func (r *dashboardRepositoryImpl) CountPresentDays(ctx context.Context, employeeID string, start, end time.Time) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT date) FROM attendances
		WHERE employee_id = $1 AND status = 'present' AND date BETWEEN $2 AND $3
	`
	return r.count(ctx, "present days", query, employeeID, dateOnly(start), dateOnly(end))
}

// RecentAttendance returns the newest rows first.
func (r *dashboardRepositoryImpl) RecentAttendance(ctx context.Context, employeeID string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, attendanceSelect+` WHERE a.employee_id = $1 ORDER BY a.date DESC LIMIT $2`, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent attendance: %w", err)
	}
	defer rows.Close()

	results := make([]attendance.Attendance, 0, limit)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		results = append(results, att)
	}
	return results, rows.Err()
}

func (r *dashboardRepositoryImpl) RecentLeaves(ctx context.Context, employeeID string, limit int) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveSelect+` WHERE l.employee_id = $1 ORDER BY l.created_at DESC LIMIT $2`, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent leaves: %w", err)
	}
	defer rows.Close()

	results := make([]leave.Leave, 0, limit)
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

func (r *dashboardRepositoryImpl) RecentPayrolls(ctx context.Context, employeeID string, limit int) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, payrollSelect+` WHERE p.employee_id = $1 ORDER BY p.year DESC, p.month DESC LIMIT $2`, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent payrolls: %w", err)
	}
	defer rows.Close()

	results := make([]payroll.Payroll, 0, limit)
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
