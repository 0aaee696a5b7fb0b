package master

import (
	"context"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryDepartments struct {
	department.DepartmentRepository
	rows []department.Department
}

func (m *memoryDepartments) ExistsByName(_ context.Context, name string, excludeID *string) (bool, error) {
	for _, d := range m.rows {
		if strings.EqualFold(d.Name, name) && (excludeID == nil || d.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryDepartments) Create(_ context.Context, d department.Department) (department.Department, error) {
	d.ID = "dep-" + d.Name
	m.rows = append(m.rows, d)
	return d, nil
}

func (m *memoryDepartments) Update(_ context.Context, d department.Department) (department.Department, error) {
	for i := range m.rows {
		if m.rows[i].ID == d.ID {
			m.rows[i] = d
			return d, nil
		}
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

type memoryDesignations struct {
	designation.DesignationRepository
}

func (memoryDesignations) ExistsByName(context.Context, string, *string) (bool, error) {
	return false, nil
}

func (memoryDesignations) Create(_ context.Context, d designation.Designation) (designation.Designation, error) {
	d.ID = "des-1"
	return d, nil
}

func TestCreateDepartment(t *testing.T) {
	repo := &memoryDepartments{}
	svc := NewMasterService(repo, memoryDesignations{})
	ctx := context.Background()

	created, err := svc.CreateDepartment(ctx, department.DepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", created.Name)

	_, err = svc.CreateDepartment(ctx, department.DepartmentRequest{Name: "engineering"})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	_, err = svc.CreateDepartment(ctx, department.DepartmentRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "name", verrs[0].Field)
}

func TestUpdateDepartment_KeepsOwnName(t *testing.T) {
	repo := &memoryDepartments{}
	svc := NewMasterService(repo, memoryDesignations{})
	ctx := context.Background()

	eng, err := svc.CreateDepartment(ctx, department.DepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)
	_, err = svc.CreateDepartment(ctx, department.DepartmentRequest{Name: "Sales"})
	require.NoError(t, err)

	desc := "Builds things"
	updated, err := svc.UpdateDepartment(ctx, department.DepartmentRequest{ID: eng.ID, Name: "Engineering", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, &desc, updated.Description)

	_, err = svc.UpdateDepartment(ctx, department.DepartmentRequest{ID: eng.ID, Name: "Sales"})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)
}

func TestCreateDesignation(t *testing.T) {
	svc := NewMasterService(&memoryDepartments{}, memoryDesignations{})

	created, err := svc.CreateDesignation(context.Background(), designation.DesignationRequest{Name: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "des-1", created.ID)
}
