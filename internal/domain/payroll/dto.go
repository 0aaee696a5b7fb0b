package payroll

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SALARY DTOs ==========

type SalaryRequest struct {
	EmployeeID  string          `json:"-"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	HouseRent   decimal.Decimal `json:"house_rent"`
	Medical     decimal.Decimal `json:"medical"`
	Transport   decimal.Decimal `json:"transport"`
}

func (r *SalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	validator.Required(&errs, "employee_id", r.EmployeeID)
	nonNegative(&errs, "basic_salary", r.BasicSalary)
	nonNegative(&errs, "house_rent", r.HouseRent)
	nonNegative(&errs, "medical", r.Medical)
	nonNegative(&errs, "transport", r.Transport)

	return errs.Err()
}

type SalaryResponse struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	BasicSalary  decimal.Decimal `json:"basic_salary"`
	HouseRent    decimal.Decimal `json:"house_rent"`
	Medical      decimal.Decimal `json:"medical"`
	Transport    decimal.Decimal `json:"transport"`
	Allowances   decimal.Decimal `json:"allowances"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func NewSalaryResponse(s Salary) SalaryResponse {
	return SalaryResponse{
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		BasicSalary:  s.BasicSalary,
		HouseRent:    s.HouseRent,
		Medical:      s.Medical,
		Transport:    s.Transport,
		Allowances:   s.Allowances(),
		UpdatedAt:    s.UpdatedAt,
	}
}

// ========== PAYROLL DTOs ==========

type CreatePayrollRequest struct {
	EmployeeID     string           `json:"employee_id"`
	Month          int              `json:"month"`
	Year           int              `json:"year"`
	Allowances     *decimal.Decimal `json:"allowances,omitempty"`
	OvertimeAmount *decimal.Decimal `json:"overtime_amount,omitempty"`
	Deductions     *decimal.Decimal `json:"deductions,omitempty"`
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	validator.Required(&errs, "employee_id", r.EmployeeID)
	periodErrors(&errs, r.Month, r.Year)
	if r.Allowances != nil {
		nonNegative(&errs, "allowances", *r.Allowances)
	}
	if r.OvertimeAmount != nil {
		nonNegative(&errs, "overtime_amount", *r.OvertimeAmount)
	}
	if r.Deductions != nil {
		nonNegative(&errs, "deductions", *r.Deductions)
	}

	return errs.Err()
}

// Amounts returns allowances, overtime and deductions with absent values as zero.
func (r *CreatePayrollRequest) Amounts() (allowances, overtime, deductions decimal.Decimal) {
	return orZero(r.Allowances), orZero(r.OvertimeAmount), orZero(r.Deductions)
}

type PeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors
	periodErrors(&errs, r.Month, r.Year)
	return errs.Err()
}

type PayrollFilter struct {
	Month      *int
	Year       *int
	EmployeeID *string
	Limit      int
}

type PayrollResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name,omitempty"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	BasicSalary    decimal.Decimal `json:"basic_salary"`
	Allowances     decimal.Decimal `json:"allowances"`
	OvertimeAmount decimal.Decimal `json:"overtime_amount"`
	Deductions     decimal.Decimal `json:"deductions"`
	NetSalary      decimal.Decimal `json:"net_salary"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

func NewPayrollResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:             p.ID,
		EmployeeID:     p.EmployeeID,
		EmployeeName:   p.EmployeeName,
		Month:          p.Month,
		Year:           p.Year,
		BasicSalary:    p.BasicSalary,
		Allowances:     p.Allowances,
		OvertimeAmount: p.OvertimeAmount,
		Deductions:     p.Deductions,
		NetSalary:      p.NetSalary,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
	}
}

func NewPayrollResponses(list []Payroll) []PayrollResponse {
	out := make([]PayrollResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewPayrollResponse(p))
	}
	return out
}

type CalculateResult struct {
	Month   int `json:"month"`
	Year    int `json:"year"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type PayrollReportResponse struct {
	Month         int               `json:"month"`
	Year          int               `json:"year"`
	TotalEmployee int               `json:"total_employee"`
	TotalBasic    decimal.Decimal   `json:"total_basic"`
	TotalNet      decimal.Decimal   `json:"total_net"`
	Payrolls      []PayrollResponse `json:"payrolls"`
}

// NewPayrollReport totals the payrolls of one period.
func NewPayrollReport(month, year int, list []Payroll) PayrollReportResponse {
	report := PayrollReportResponse{
		Month:         month,
		Year:          year,
		TotalEmployee: len(list),
		TotalBasic:    decimal.Zero,
		TotalNet:      decimal.Zero,
		Payrolls:      NewPayrollResponses(list),
	}
	for _, p := range list {
		report.TotalBasic = report.TotalBasic.Add(p.BasicSalary)
		report.TotalNet = report.TotalNet.Add(p.NetSalary)
	}
	return report
}

func periodErrors(errs *validator.ValidationErrors, month, year int) {
	if month < 1 || month > 12 {
		*errs = append(*errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if year < 2000 || year > 2100 {
		*errs = append(*errs, validator.ValidationError{Field: "year", Message: "year must be between 2000 and 2100"})
	}
}

func nonNegative(errs *validator.ValidationErrors, field string, v decimal.Decimal) {
	if v.IsNegative() {
		*errs = append(*errs, validator.ValidationError{Field: field, Message: field + " must be non-negative"})
	}
}

func orZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
