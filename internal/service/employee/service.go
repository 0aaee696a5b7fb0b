package employee

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/file"
)

// portalEmailDomain is used for portal logins of employees without an email.
const portalEmailDomain = "employee.local"

type EmployeeServiceImpl struct {
	db           database.Transactor
	employeeRepo employee.EmployeeRepository
	userService  user.UserService
	fileService  file.FileService
}

func NewEmployeeService(
	db database.Transactor,
	employeeRepo employee.EmployeeRepository,
	userService user.UserService,
	fileService file.FileService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		userService:  userService,
		fileService:  fileService,
	}
}

func (s *EmployeeServiceImpl) toResponse(e employee.Employee) employee.EmployeeResponse {
	resp := employee.NewEmployeeResponse(e)
	if e.Image != nil && s.fileService != nil {
		url := s.fileService.GetFileURL(*e.Image)
		resp.ImageURL = &url
	}
	return resp
}

func (s *EmployeeServiceImpl) ensureUnique(ctx context.Context, e employee.Employee, excludeID *string) error {
	if e.UniqueID != nil {
		exists, err := s.employeeRepo.ExistsByUniqueID(ctx, *e.UniqueID, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return employee.ErrUniqueIDExists
		}
	}
	if e.Email != nil {
		exists, err := s.employeeRepo.ExistsByEmail(ctx, *e.Email, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return employee.ErrEmailExists
		}
	}
	return nil
}

// portalAccount derives the login for e. The employee email wins over the unique ID.
func portalAccount(e employee.Employee, password string) user.EmployeeAccount {
	account := user.EmployeeAccount{
		EmployeeID: e.ID,
		Name:       e.FullName(),
		Phone:      e.Phone,
		Password:   password,
	}
	switch {
	case e.Email != nil:
		account.Email = strings.ToLower(*e.Email)
	case e.UniqueID != nil:
		account.Email = strings.ToLower(*e.UniqueID) + "@" + portalEmailDomain
	}
	return account
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	entity := req.ToEntity()
	if err := s.ensureUnique(ctx, entity, nil); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var created employee.Employee
	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.employeeRepo.Create(ctx, entity)
		if err != nil {
			return err
		}
		if req.PortalPassword != nil && *req.PortalPassword != "" {
			if _, err := s.userService.UpsertEmployeeAccount(ctx, portalAccount(created, *req.PortalPassword)); err != nil {
				return fmt.Errorf("failed to create portal account: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID)
	return s.toResponse(created), nil
}

// UpdateEmployee keeps the stored image; UploadImage is the only way to change it.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	entity := req.ToEntity()
	entity.ID = existing.ID
	entity.Image = existing.Image
	if err := s.ensureUnique(ctx, entity, &existing.ID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.employeeRepo.Update(ctx, entity)
		if err != nil {
			return err
		}
		if req.PortalPassword != nil && *req.PortalPassword != "" {
			if _, err := s.userService.UpsertEmployeeAccount(ctx, portalAccount(updated, *req.PortalPassword)); err != nil {
				return fmt.Errorf("failed to update portal account: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.toResponse(updated), nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.toResponse(e), nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	list, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]employee.EmployeeResponse, 0, len(list))
	for _, e := range list {
		responses = append(responses, s.toResponse(e))
	}
	return responses, nil
}

func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	if existing.Image != nil {
		if err := s.fileService.DeleteFile(ctx, *existing.Image); err != nil {
			slog.Warn("Failed to delete employee image", "employee_id", id, "image", *existing.Image, "error", err)
		}
	}
	slog.Info("Employee deleted", "employee_id", id)
	return nil
}

func (s *EmployeeServiceImpl) UploadImage(ctx context.Context, id string, file io.Reader, filename string) (employee.EmployeeResponse, error) {
	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	key, err := s.fileService.UploadEmployeeImage(ctx, id, file, filename)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.employeeRepo.UpdateImage(ctx, id, key); err != nil {
		if delErr := s.fileService.DeleteFile(ctx, key); delErr != nil {
			slog.Warn("Failed to clean up uploaded image", "employee_id", id, "image", key, "error", delErr)
		}
		return employee.EmployeeResponse{}, err
	}

	if existing.Image != nil && *existing.Image != key {
		if err := s.fileService.DeleteFile(ctx, *existing.Image); err != nil {
			slog.Warn("Failed to delete previous employee image", "employee_id", id, "image", *existing.Image, "error", err)
		}
	}

	existing.Image = &key
	return s.toResponse(existing), nil
}
