package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary is the standing pay structure of one employee.
type Salary struct {
	EmployeeID  string
	BasicSalary decimal.Decimal
	HouseRent   decimal.Decimal
	Medical     decimal.Decimal
	Transport   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName string
}

// Allowances sums the non-basic salary components.
func (s Salary) Allowances() decimal.Decimal {
	return s.HouseRent.Add(s.Medical).Add(s.Transport)
}

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Payroll is the pay record of one employee for one month.
type Payroll struct {
	ID             string
	EmployeeID     string
	Month          int
	Year           int
	BasicSalary    decimal.Decimal
	Allowances     decimal.Decimal
	OvertimeAmount decimal.Decimal
	Deductions     decimal.Decimal
	NetSalary      decimal.Decimal
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeName string
}

// NetSalary is basic + allowances + overtime - deductions.
func NetSalary(basic, allowances, overtime, deductions decimal.Decimal) decimal.Decimal {
	return basic.Add(allowances).Add(overtime).Sub(deductions)
}

// Candidate is an active employee with a salary, considered by CalculatePayroll.
type Candidate struct {
	EmployeeID  string
	BasicSalary decimal.Decimal
}
