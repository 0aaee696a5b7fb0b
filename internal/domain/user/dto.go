package user

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID            string  `json:"id"`
	EmployeeID    *string `json:"employee_id,omitempty"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Role          string  `json:"role"`
	Status        string  `json:"status"`
	OAuthProvider *string `json:"oauth_provider,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		EmployeeID:    u.EmployeeID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          string(u.Role),
		Status:        string(u.Status),
		OAuthProvider: u.OAuthProvider,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

type ListUserFilter struct {
	Role   *string
	Status *string
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	validator.Required(&errs, "name", r.Name)
	validateEmail(&errs, r.Email)
	validatePhone(&errs, r.Phone)

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	} else if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 6 characters"})
	}

	validateRole(&errs, r.Role)

	return errs.Err()
}

// UpdateUserRequest represents request to update user
type UpdateUserRequest struct {
	ID       string  `json:"-"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	Role     string  `json:"role"`
	Status   string  `json:"status"`
	Password *string `json:"password,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	validator.Required(&errs, "id", r.ID)
	validator.Required(&errs, "name", r.Name)
	validateEmail(&errs, r.Email)
	validatePhone(&errs, r.Phone)
	validateRole(&errs, r.Role)

	if !validator.IsInSlice(r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be active or inactive"})
	}

	// A blank password keeps the current one.
	if r.Password != nil && *r.Password != "" && len(*r.Password) < 6 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 6 characters"})
	}

	return errs.Err()
}

// CreateFromEmployeeRequest opens a login for an existing employee record.
type CreateFromEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

func (r *CreateFromEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	validator.Required(&errs, "employee_id", r.EmployeeID)
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	} else if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 6 characters"})
	}
	validateRole(&errs, r.Role)

	return errs.Err()
}

type CreateHRUserRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Email string  `json:"email" validate:"required,email,max=100"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

func (r *CreateHRUserRequest) Validate() error {
	return validator.Struct(r)
}

// CreateHRUserResponse carries the generated password; it is shown once.
type CreateHRUserResponse struct {
	User     UserResponse `json:"user"`
	Password string       `json:"password"`
}

// EmployeeAccount describes the portal login attached to an employee record.
type EmployeeAccount struct {
	EmployeeID string
	Name       string
	Email      string
	Phone      *string
	Password   string
}

func validateEmail(errs *validator.ValidationErrors, email string) {
	if validator.IsEmpty(email) {
		*errs = append(*errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(email) {
		*errs = append(*errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
}

func validatePhone(errs *validator.ValidationErrors, phone *string) {
	if phone != nil && *phone != "" && !validator.IsValidPhoneNumber(*phone) {
		*errs = append(*errs, validator.ValidationError{Field: "phone", Message: "invalid phone number"})
	}
}

func validateRole(errs *validator.ValidationErrors, role string) {
	if validator.IsEmpty(role) {
		*errs = append(*errs, validator.ValidationError{Field: "role", Message: "role is required"})
	} else if !Role(role).IsValid() {
		*errs = append(*errs, validator.ValidationError{Field: "role", Message: "invalid role"})
	}
}
