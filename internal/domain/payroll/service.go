package payroll

import "context"

type PayrollService interface {
	UpsertSalary(ctx context.Context, req SalaryRequest) (SalaryResponse, error)
	GetSalary(ctx context.Context, employeeID string) (SalaryResponse, error)
	ListSalaries(ctx context.Context) ([]SalaryResponse, error)

	// CreatePayroll requires a salary; net = basic + allowances + overtime - deductions.
	CreatePayroll(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	// CalculatePayroll creates a basic-only payroll for each active employee lacking one for the period.
	CalculatePayroll(ctx context.Context, req PeriodRequest) (CalculateResult, error)
	GetPayroll(ctx context.Context, id string) (PayrollResponse, error)
	ListPayrolls(ctx context.Context, filter PayrollFilter) ([]PayrollResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollResponse, error)
	// DeletePayroll refuses paid payrolls.
	DeletePayroll(ctx context.Context, id string) error
	PayrollReport(ctx context.Context, req PeriodRequest) (PayrollReportResponse, error)
}
