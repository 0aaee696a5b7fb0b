package payroll

import "context"

type SalaryRepository interface {
	Upsert(ctx context.Context, s Salary) (Salary, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Salary, error)
	List(ctx context.Context) ([]Salary, error)
}

type PayrollRepository interface {
	Create(ctx context.Context, p Payroll) (Payroll, error)
	GetByID(ctx context.Context, id string) (Payroll, error)
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, error)
	// ListCandidates returns active employees that have a salary but no payroll for the period.
	ListCandidates(ctx context.Context, month, year int) ([]Candidate, error)
	MarkPaid(ctx context.Context, id string) (Payroll, error)
	Delete(ctx context.Context, id string) error
}
