package master

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
)

type MasterService interface {
	// Department operations
	CreateDepartment(ctx context.Context, req department.DepartmentRequest) (department.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, req department.DepartmentRequest) (department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error

	// Designation operations
	CreateDesignation(ctx context.Context, req designation.DesignationRequest) (designation.DesignationResponse, error)
	GetDesignation(ctx context.Context, id string) (designation.DesignationResponse, error)
	ListDesignations(ctx context.Context) ([]designation.DesignationResponse, error)
	UpdateDesignation(ctx context.Context, req designation.DesignationRequest) (designation.DesignationResponse, error)
	DeleteDesignation(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	departmentRepo  department.DepartmentRepository
	designationRepo designation.DesignationRepository
}

func NewMasterService(
	departmentRepo department.DepartmentRepository,
	designationRepo designation.DesignationRepository,
) MasterService {
	return &masterServiceImpl{
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.DepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	exists, err := s.departmentRepo.ExistsByName(ctx, req.Name, nil)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if exists {
		return department.DepartmentResponse{}, department.ErrDepartmentNameExists
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(created), nil
}

func (s *masterServiceImpl) GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(d), nil
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error) {
	list, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(list))
	for _, d := range list {
		responses = append(responses, department.NewDepartmentResponse(d))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, req department.DepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	exists, err := s.departmentRepo.ExistsByName(ctx, req.Name, &req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if exists {
		return department.DepartmentResponse{}, department.ErrDepartmentNameExists
	}

	updated, err := s.departmentRepo.Update(ctx, department.Department{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(updated), nil
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	return s.departmentRepo.Delete(ctx, id)
}

// ==================== DESIGNATION OPERATIONS ====================

func (s *masterServiceImpl) CreateDesignation(ctx context.Context, req designation.DesignationRequest) (designation.DesignationResponse, error) {
	if err := req.Validate(); err != nil {
		return designation.DesignationResponse{}, err
	}

	exists, err := s.designationRepo.ExistsByName(ctx, req.Name, nil)
	if err != nil {
		return designation.DesignationResponse{}, err
	}
	if exists {
		return designation.DesignationResponse{}, designation.ErrDesignationNameExists
	}

	created, err := s.designationRepo.Create(ctx, designation.Designation{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return designation.DesignationResponse{}, err
	}
	return designation.NewDesignationResponse(created), nil
}

func (s *masterServiceImpl) GetDesignation(ctx context.Context, id string) (designation.DesignationResponse, error) {
	d, err := s.designationRepo.GetByID(ctx, id)
	if err != nil {
		return designation.DesignationResponse{}, err
	}
	return designation.NewDesignationResponse(d), nil
}

func (s *masterServiceImpl) ListDesignations(ctx context.Context) ([]designation.DesignationResponse, error) {
	list, err := s.designationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list designations: %w", err)
	}

	responses := make([]designation.DesignationResponse, 0, len(list))
	for _, d := range list {
		responses = append(responses, designation.NewDesignationResponse(d))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateDesignation(ctx context.Context, req designation.DesignationRequest) (designation.DesignationResponse, error) {
	if err := req.Validate(); err != nil {
		return designation.DesignationResponse{}, err
	}

	exists, err := s.designationRepo.ExistsByName(ctx, req.Name, &req.ID)
	if err != nil {
		return designation.DesignationResponse{}, err
	}
	if exists {
		return designation.DesignationResponse{}, designation.ErrDesignationNameExists
	}

	updated, err := s.designationRepo.Update(ctx, designation.Designation{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return designation.DesignationResponse{}, err
	}
	return designation.NewDesignationResponse(updated), nil
}

func (s *masterServiceImpl) DeleteDesignation(ctx context.Context, id string) error {
	return s.designationRepo.Delete(ctx, id)
}
