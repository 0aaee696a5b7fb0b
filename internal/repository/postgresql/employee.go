package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const employeeSelect = `
	SELECT e.id, e.department_id, e.designation_id, e.schedule_id, e.first_name, e.last_name,
		e.unique_id, e.email, e.phone, e.address, e.dob, e.gender, e.religion, e.marital,
		e.image, e.status, e.created_at, e.updated_at,
		d.name, g.name, s.name
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN designations g ON g.id = e.designation_id
	LEFT JOIN schedules s ON s.id = e.schedule_id`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func employeeDest(e *employee.Employee, gender **string) []any {
	return []any{
		&e.ID,
		&e.DepartmentID,
		&e.DesignationID,
		&e.ScheduleID,
		&e.FirstName,
		&e.LastName,
		&e.UniqueID,
		&e.Email,
		&e.Phone,
		&e.Address,
		&e.DOB,
		gender,
		&e.Religion,
		&e.Marital,
		&e.Image,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DepartmentName,
		&e.DesignationName,
		&e.ScheduleName,
	}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var gender *string
	if err := row.Scan(employeeDest(&e, &gender)...); err != nil {
		return employee.Employee{}, err
	}
	setGender(&e, gender)
	return e, nil
}

func setGender(e *employee.Employee, gender *string) {
	if gender != nil {
		g := employee.Gender(*gender)
		e.Gender = &g
	}
	if e.DOB != nil {
		dob := dateOnly(*e.DOB)
		e.DOB = &dob
	}
}

func genderArg(g *employee.Gender) *string {
	if g == nil {
		return nil
	}
	s := string(*g)
	return &s
}

func (r *employeeRepositoryImpl) mapWriteError(err error, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}
	if isUniqueViolation(err) {
		msg := err.Error()
		if strings.Contains(msg, "unique_id") {
			return employee.ErrUniqueIDExists
		}
		if strings.Contains(msg, "email") {
			return employee.ErrEmailExists
		}
	}
	if isForeignKeyViolation(err) {
		return employee.ErrUnknownReference
	}
	return fmt.Errorf("failed to %s employee: %w", action, err)
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return employee.Employee{}, err
	}

	query := `
		INSERT INTO employees (
			id, department_id, designation_id, schedule_id, first_name, last_name,
			unique_id, email, phone, address, dob, gender, religion, marital, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = q.Exec(ctx, query,
		id,
		e.DepartmentID,
		e.DesignationID,
		e.ScheduleID,
		e.FirstName,
		e.LastName,
		e.UniqueID,
		e.Email,
		e.Phone,
		e.Address,
		e.DOB,
		genderArg(e.Gender),
		e.Religion,
		e.Marital,
		e.Status,
	)
	if err != nil {
		return employee.Employee{}, r.mapWriteError(err, "create")
	}

	return r.GetByID(ctx, id)
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if !validator.IsValidUUID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByUniqueID(ctx context.Context, uniqueID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.unique_id = $1`, uniqueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by unique id: %w", err)
	}
	return e, nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	if filter.DepartmentID != nil && !validator.IsValidUUID(*filter.DepartmentID) {
		return []employee.Employee{}, nil
	}
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []any
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.unique_id ILIKE $%d OR e.email ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	query := employeeSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.first_name ASC, e.last_name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

const withScheduleSelect = `
	SELECT e.id, e.department_id, e.designation_id, e.schedule_id, e.first_name, e.last_name,
		e.unique_id, e.email, e.phone, e.address, e.dob, e.gender, e.religion, e.marital,
		e.image, e.status, e.created_at, e.updated_at,
		d.name, g.name, s.name, s.time_in, s.time_out
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN designations g ON g.id = e.designation_id
	LEFT JOIN schedules s ON s.id = e.schedule_id
`

func (r *employeeRepositoryImpl) ListActiveWithSchedule(ctx context.Context) ([]employee.WithSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := withScheduleSelect + `
		WHERE e.status = 'active'
		ORDER BY e.first_name ASC, e.last_name ASC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return collectWithSchedule(rows)
}

// ListWithScheduleByIDs ignores the status column. Malformed ids are skipped.
func (r *employeeRepositoryImpl) ListWithScheduleByIDs(ctx context.Context, ids []string) ([]employee.WithSchedule, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validator.IsValidUUID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []employee.WithSchedule{}, nil
	}

	q := GetQuerier(ctx, r.db)
	query := withScheduleSelect + `
		WHERE e.id = ANY($1::uuid[])
		ORDER BY e.first_name ASC, e.last_name ASC
	`
	rows, err := q.Query(ctx, query, valid)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by id: %w", err)
	}
	return collectWithSchedule(rows)
}

func collectWithSchedule(rows pgx.Rows) ([]employee.WithSchedule, error) {
	defer rows.Close()

	result := make([]employee.WithSchedule, 0)
	for rows.Next() {
		var ws employee.WithSchedule
		var gender *string
		var timeIn, timeOut pgtype.Time

		dest := append(employeeDest(&ws.Employee, &gender), &timeIn, &timeOut)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan employee schedule: %w", err)
		}
		setGender(&ws.Employee, gender)

		var err error
		if ws.ScheduleTimeIn, err = fromPGTimePtr(timeIn); err != nil {
			return nil, err
		}
		if ws.ScheduleTimeOut, err = fromPGTimePtr(timeOut); err != nil {
			return nil, err
		}
		result = append(result, ws)
	}
	return result, rows.Err()
}

func (r *employeeRepositoryImpl) exists(ctx context.Context, column, value string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM employees WHERE %s = $1 AND ($2::uuid IS NULL OR id <> $2::uuid))`, column)
	var exists bool
	if err := q.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee %s: %w", column, err)
	}
	return exists, nil
}

func (r *employeeRepositoryImpl) ExistsByUniqueID(ctx context.Context, uniqueID string, excludeID *string) (bool, error) {
	return r.exists(ctx, "unique_id", uniqueID, excludeID)
}

func (r *employeeRepositoryImpl) ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error) {
	return r.exists(ctx, "email", email, excludeID)
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if !validator.IsValidUUID(e.ID) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET department_id = $1, designation_id = $2, schedule_id = $3, first_name = $4, last_name = $5,
			unique_id = $6, email = $7, phone = $8, address = $9, dob = $10, gender = $11,
			religion = $12, marital = $13, status = $14, updated_at = NOW()
		WHERE id = $15
	`
	tag, err := q.Exec(ctx, query,
		e.DepartmentID,
		e.DesignationID,
		e.ScheduleID,
		e.FirstName,
		e.LastName,
		e.UniqueID,
		e.Email,
		e.Phone,
		e.Address,
		e.DOB,
		genderArg(e.Gender),
		e.Religion,
		e.Marital,
		e.Status,
		e.ID,
	)
	if err != nil {
		return employee.Employee{}, r.mapWriteError(err, "update")
	}
	if tag.RowsAffected() == 0 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	return r.GetByID(ctx, e.ID)
}

func (r *employeeRepositoryImpl) UpdateImage(ctx context.Context, id string, image string) error {
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET image = $1, updated_at = NOW() WHERE id = $2`, image, id)
	if err != nil {
		return fmt.Errorf("failed to update employee image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for attendance, leave, salary, payroll and the portal login.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
