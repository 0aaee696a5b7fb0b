package payroll

import "errors"

var (
	ErrSalaryNotFound       = errors.New("salary not found")
	ErrPayrollNotFound      = errors.New("payroll not found")
	ErrPayrollAlreadyExists = errors.New("payroll already exists for this period")
	ErrEmployeeHasNoSalary  = errors.New("employee has no salary configured")
	ErrPayrollAlreadyPaid   = errors.New("payroll already paid, cannot modify")
)
