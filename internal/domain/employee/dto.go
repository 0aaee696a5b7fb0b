package employee

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type EmployeeRequest struct {
	ID            string  `json:"-"`
	DepartmentID  *string `json:"department_id,omitempty"`
	DesignationID *string `json:"designation_id,omitempty"`
	ScheduleID    *string `json:"schedule_id,omitempty"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	UniqueID      *string `json:"unique_id,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	DOB           *string `json:"dob,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	Religion      *string `json:"religion,omitempty"`
	Marital       *string `json:"marital,omitempty"`
	Status        string  `json:"status"`

	// PortalPassword, when set, creates or resets the employee's self-service login.
	PortalPassword *string `json:"portal_password,omitempty"`
}

func (r *EmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	validator.Required(&errs, "first_name", r.FirstName)
	validator.Required(&errs, "last_name", r.LastName)
	if len(r.FirstName) > 100 {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name must not exceed 100 characters"})
	}
	if len(r.LastName) > 100 {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name must not exceed 100 characters"})
	}

	if r.UniqueID != nil && len(*r.UniqueID) > 50 {
		errs = append(errs, validator.ValidationError{Field: "unique_id", Message: "unique_id must not exceed 50 characters"})
	}
	if present(r.Email) && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email format"})
	}
	if present(r.Phone) && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "invalid phone number"})
	}
	if present(r.DOB) {
		if dob, ok := utils.ParseDate(*r.DOB); !ok {
			errs = append(errs, validator.ValidationError{Field: "dob", Message: "dob must be in YYYY-MM-DD format"})
		} else if dob.After(time.Now()) {
			errs = append(errs, validator.ValidationError{Field: "dob", Message: "dob cannot be in the future"})
		}
	}
	refs := []struct {
		field string
		value *string
	}{
		{"department_id", r.DepartmentID},
		{"designation_id", r.DesignationID},
		{"schedule_id", r.ScheduleID},
	}
	for _, ref := range refs {
		if present(ref.value) && !validator.IsValidUUID(*ref.value) {
			errs = append(errs, validator.ValidationError{Field: ref.field, Message: ref.field + " must be a valid id"})
		}
	}
	if present(r.Gender) && !validator.IsInSlice(*r.Gender, GenderValues) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "gender must be male, female or other"})
	}

	if r.Status == "" {
		r.Status = string(StatusActive)
	} else if r.Status != string(StatusActive) && r.Status != string(StatusInactive) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be active or inactive"})
	}

	if present(r.PortalPassword) {
		if len(*r.PortalPassword) < 6 {
			errs = append(errs, validator.ValidationError{Field: "portal_password", Message: "portal_password must be at least 6 characters"})
		}
		if !present(r.Email) && !present(r.UniqueID) {
			errs = append(errs, validator.ValidationError{Field: "portal_password", Message: ErrPortalLoginMissing.Error()})
		}
	}

	return errs.Err()
}

// ToEntity maps the request onto an Employee; call after Validate.
func (r *EmployeeRequest) ToEntity() Employee {
	e := Employee{
		ID:            r.ID,
		DepartmentID:  blankToNil(r.DepartmentID),
		DesignationID: blankToNil(r.DesignationID),
		ScheduleID:    blankToNil(r.ScheduleID),
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		UniqueID:      blankToNil(r.UniqueID),
		Email:         blankToNil(r.Email),
		Phone:         blankToNil(r.Phone),
		Address:       blankToNil(r.Address),
		Religion:      blankToNil(r.Religion),
		Marital:       blankToNil(r.Marital),
		Status:        Status(r.Status),
	}
	if present(r.DOB) {
		if dob, ok := utils.ParseDate(*r.DOB); ok {
			e.DOB = &dob
		}
	}
	if present(r.Gender) {
		g := Gender(*r.Gender)
		e.Gender = &g
	}
	return e
}

type EmployeeFilter struct {
	Status       *string
	DepartmentID *string
	Search       *string
}

type EmployeeResponse struct {
	ID              string  `json:"id"`
	DepartmentID    *string `json:"department_id,omitempty"`
	DepartmentName  *string `json:"department_name,omitempty"`
	DesignationID   *string `json:"designation_id,omitempty"`
	DesignationName *string `json:"designation_name,omitempty"`
	ScheduleID      *string `json:"schedule_id,omitempty"`
	ScheduleName    *string `json:"schedule_name,omitempty"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	FullName        string  `json:"full_name"`
	UniqueID        *string `json:"unique_id,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	DOB             *string `json:"dob,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	Religion        *string `json:"religion,omitempty"`
	Marital         *string `json:"marital,omitempty"`
	Image           *string `json:"image,omitempty"`
	ImageURL        *string `json:"image_url,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:              e.ID,
		DepartmentID:    e.DepartmentID,
		DepartmentName:  e.DepartmentName,
		DesignationID:   e.DesignationID,
		DesignationName: e.DesignationName,
		ScheduleID:      e.ScheduleID,
		ScheduleName:    e.ScheduleName,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		FullName:        e.FullName(),
		UniqueID:        e.UniqueID,
		Email:           e.Email,
		Phone:           e.Phone,
		Address:         e.Address,
		Religion:        e.Religion,
		Marital:         e.Marital,
		Image:           e.Image,
		Status:          string(e.Status),
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
	}
	if e.DOB != nil {
		dob := e.DOB.Format(utils.DateLayout)
		resp.DOB = &dob
	}
	if e.Gender != nil {
		g := string(*e.Gender)
		resp.Gender = &g
	}
	return resp
}

func present(s *string) bool {
	return s != nil && !validator.IsEmpty(*s)
}

func blankToNil(s *string) *string {
	if !present(s) {
		return nil
	}
	return s
}
