package designation

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"

type DesignationRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

func (r *DesignationRequest) Validate() error {
	return validator.Struct(r)
}

type DesignationResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	EmployeeCount int     `json:"employee_count"`
}

func NewDesignationResponse(v Designation) DesignationResponse {
	return DesignationResponse{
		ID:            v.ID,
		Name:          v.Name,
		Description:   v.Description,
		EmployeeCount: v.EmployeeCount,
	}
}
