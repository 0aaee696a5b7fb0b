package employee

import (
	"context"
	"io"
)

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	// DeleteEmployee also removes attendance, leave, salary and payroll rows.
	DeleteEmployee(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id string, file io.Reader, filename string) (EmployeeResponse, error)
}
