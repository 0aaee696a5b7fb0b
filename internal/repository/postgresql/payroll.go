package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) payroll.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

const salarySelect = `
	SELECT s.employee_id, s.basic_salary, s.house_rent, s.medical, s.transport, s.created_at, s.updated_at,
		COALESCE(e.first_name || ' ' || e.last_name, '')
	FROM salaries s
	LEFT JOIN employees e ON e.id = s.employee_id`

func scanSalary(row pgx.Row) (payroll.Salary, error) {
	var s payroll.Salary
	err := row.Scan(&s.EmployeeID, &s.BasicSalary, &s.HouseRent, &s.Medical, &s.Transport, &s.CreatedAt, &s.UpdatedAt, &s.EmployeeName)
	return s, err
}

// Upsert implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) Upsert(ctx context.Context, s payroll.Salary) (payroll.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salaries (employee_id, basic_salary, house_rent, medical, transport)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id) DO UPDATE
		SET basic_salary = EXCLUDED.basic_salary,
			house_rent = EXCLUDED.house_rent,
			medical = EXCLUDED.medical,
			transport = EXCLUDED.transport,
			updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, s.EmployeeID, s.BasicSalary, s.HouseRent, s.Medical, s.Transport); err != nil {
		return payroll.Salary{}, fmt.Errorf("failed to upsert salary: %w", err)
	}

	return r.GetByEmployeeID(ctx, s.EmployeeID)
}

// GetByEmployeeID implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (payroll.Salary, error) {
	if !validator.IsValidUUID(employeeID) {
		return payroll.Salary{}, payroll.ErrSalaryNotFound
	}
	q := GetQuerier(ctx, r.db)

	s, err := scanSalary(q.QueryRow(ctx, salarySelect+` WHERE s.employee_id = $1`, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Salary{}, payroll.ErrSalaryNotFound
		}
		return payroll.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}
	return s, nil
}

// List implements payroll.SalaryRepository.
func (r *salaryRepositoryImpl) List(ctx context.Context) ([]payroll.Salary, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, salarySelect+` ORDER BY e.first_name ASC, e.last_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	results := make([]payroll.Salary, 0)
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollSelect = `
	SELECT p.id, p.employee_id, p.month, p.year, p.basic_salary, p.allowances, p.overtime_amount,
		p.deductions, p.net_salary, p.status, p.created_at, p.updated_at,
		COALESCE(e.first_name || ' ' || e.last_name, '')
	FROM payrolls p
	LEFT JOIN employees e ON e.id = p.employee_id`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var (
		p      payroll.Payroll
		status string
	)
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BasicSalary, &p.Allowances, &p.OvertimeAmount,
		&p.Deductions, &p.NetSalary, &status, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName,
	)
	if err != nil {
		return payroll.Payroll{}, err
	}
	p.Status = payroll.Status(status)
	return p, nil
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return payroll.Payroll{}, err
	}

	status := p.Status
	if status == "" {
		status = payroll.StatusPending
	}

	query := `
		INSERT INTO payrolls (id, employee_id, month, year, basic_salary, allowances, overtime_amount, deductions, net_salary, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = q.Exec(ctx, query,
		id,
		p.EmployeeID,
		p.Month,
		p.Year,
		p.BasicSalary,
		p.Allowances,
		p.OvertimeAmount,
		p.Deductions,
		p.NetSalary,
		string(status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	if !validator.IsValidUUID(id) {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	q := GetQuerier(ctx, r.db)

	p, err := scanPayroll(q.QueryRow(ctx, payrollSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}
	return p, nil
}

// ExistsForPeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	if !validator.IsValidUUID(employeeID) {
		return false, nil
	}
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payrolls WHERE employee_id = $1 AND month = $2 AND year = $3)`,
		employeeID, month, year,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payroll period: %w", err)
	}
	return exists, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, error) {
	if filter.EmployeeID != nil && !validator.IsValidUUID(*filter.EmployeeID) {
		return []payroll.Payroll{}, nil
	}
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []any
	argIdx := 1

	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("p.month = $%d", argIdx))
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("p.year = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	query := payrollSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.year DESC, p.month DESC, e.first_name ASC, e.last_name ASC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	results := make([]payroll.Payroll, 0)
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// ListCandidates implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListCandidates(ctx context.Context, month, year int) ([]payroll.Candidate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, s.basic_salary
		FROM employees e
		JOIN salaries s ON s.employee_id = e.id
		WHERE e.status = 'active'
			AND NOT EXISTS (
				SELECT 1 FROM payrolls p
				WHERE p.employee_id = e.id AND p.month = $1 AND p.year = $2
			)
		ORDER BY e.first_name ASC, e.last_name ASC
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll candidates: %w", err)
	}
	defer rows.Close()

	results := make([]payroll.Candidate, 0)
	for rows.Next() {
		var c payroll.Candidate
		if err := rows.Scan(&c.EmployeeID, &c.BasicSalary); err != nil {
			return nil, fmt.Errorf("failed to scan payroll candidate: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// MarkPaid implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) MarkPaid(ctx context.Context, id string) (payroll.Payroll, error) {
	if !validator.IsValidUUID(id) {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payrolls SET status = 'paid', updated_at = NOW() WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to mark payroll paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return payroll.Payroll{}, err
		}
		return payroll.Payroll{}, payroll.ErrPayrollAlreadyPaid
	}

	return r.GetByID(ctx, id)
}

// Delete implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return payroll.ErrPayrollNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payrolls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}
	return nil
}
