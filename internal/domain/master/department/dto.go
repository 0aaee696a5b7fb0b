package department

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"

type DepartmentRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

func (r *DepartmentRequest) Validate() error {
	return validator.Struct(r)
}

type DepartmentResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	EmployeeCount int     `json:"employee_count"`
}

func NewDepartmentResponse(v Department) DepartmentResponse {
	return DepartmentResponse{
		ID:            v.ID,
		Name:          v.Name,
		Description:   v.Description,
		EmployeeCount: v.EmployeeCount,
	}
}
