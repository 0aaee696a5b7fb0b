package employee

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestEmployeeRequest_Validate_DefaultsStatus(t *testing.T) {
	req := EmployeeRequest{FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "active", req.Status)
}

func TestEmployeeRequest_Validate_Fields(t *testing.T) {
	req := EmployeeRequest{
		FirstName: "Jane",
		Email:     strPtr("jane@"),
		DOB:       strPtr("1990/01/01"),
		Gender:    strPtr("robot"),
		Status:    "retired",
	}
	err := req.Validate()

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	details := errs.ToMap()
	assert.Equal(t, "last_name is required", details["last_name"])
	assert.Equal(t, "invalid email format", details["email"])
	assert.Equal(t, "dob must be in YYYY-MM-DD format", details["dob"])
	assert.Contains(t, details, "gender")
	assert.Contains(t, details, "status")
}

func TestEmployeeRequest_Validate_ReferenceIDs(t *testing.T) {
	req := EmployeeRequest{
		FirstName:     "Jane",
		LastName:      "Doe",
		DepartmentID:  strPtr("sales"),
		DesignationID: strPtr(""),
		ScheduleID:    strPtr("5f0c9a3e-1d2b-4c8e-a7f6-3b9e0d1c2a4f"),
	}
	err := req.Validate()

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, map[string]string{"department_id": "department_id must be a valid id"}, errs.ToMap())
}

func TestEmployeeRequest_Validate_PortalPasswordNeedsLogin(t *testing.T) {
	req := EmployeeRequest{FirstName: "Jane", LastName: "Doe", PortalPassword: strPtr("secret1")}
	err := req.Validate()

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, ErrPortalLoginMissing.Error(), errs.ToMap()["portal_password"])

	req.UniqueID = strPtr("EMP-7")
	assert.NoError(t, req.Validate())
}

func TestEmployeeRequest_ToEntity(t *testing.T) {
	req := EmployeeRequest{
		FirstName:    "Jane",
		LastName:     "Doe",
		DepartmentID: strPtr(""),
		DOB:          strPtr("1990-05-17"),
		Gender:       strPtr("female"),
		Status:       "active",
	}
	require.NoError(t, req.Validate())

	e := req.ToEntity()
	assert.Nil(t, e.DepartmentID)
	require.NotNil(t, e.DOB)
	assert.Equal(t, 17, e.DOB.Day())
	assert.Equal(t, Female, *e.Gender)
	assert.Equal(t, "Jane Doe", e.FullName())
}
