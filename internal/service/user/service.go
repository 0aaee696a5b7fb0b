package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

const (
	generatedPasswordLength = 12
	passwordAlphabet        = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	auditModel              = "user"
)

type userServiceImpl struct {
	userRepository     user.UserRepository
	employeeRepository employee.EmployeeRepository
	audit              audit.Recorder
}

func NewUserService(userRepository user.UserRepository, employeeRepository employee.EmployeeRepository, recorder audit.Recorder) user.UserService {
	return &userServiceImpl{
		userRepository:     userRepository,
		employeeRepository: employeeRepository,
		audit:              recorder,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func generatePassword() (string, error) {
	var sb strings.Builder
	limit := big.NewInt(int64(len(passwordAlphabet)))
	for i := 0; i < generatedPasswordLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		sb.WriteByte(passwordAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

func (s *userServiceImpl) ensureEmailFree(ctx context.Context, email string) error {
	exists, err := s.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.ErrUserEmailExists
	}
	return nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, filter user.ListUserFilter) ([]user.UserResponse, error) {
	users, err := s.userRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

func (s *userServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if err := s.ensureEmailFree(ctx, req.Email); err != nil {
		return user.UserResponse{}, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.userRepository.Create(ctx, user.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         user.Role(req.Role),
		Status:       user.StatusActive,
		PasswordHash: &hashed,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	resp := user.NewUserResponse(created)
	s.audit.Record(ctx, audit.ActionCreate, auditModel, created.ID, nil, resp)
	return resp, nil
}

func (s *userServiceImpl) CreateFromEmployee(ctx context.Context, req user.CreateFromEmployeeRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	emp, err := s.employeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if _, err := s.userRepository.GetByEmployeeID(ctx, emp.ID); err == nil {
		return user.UserResponse{}, user.ErrEmployeeHasAccount
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, err
	}

	email := user.EmployeeLoginEmail(emp.Email, emp.UniqueID)
	if email == "" {
		return user.UserResponse{}, user.ErrEmployeeLoginUnresolved
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return user.UserResponse{}, err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.userRepository.Create(ctx, user.User{
		EmployeeID:   &emp.ID,
		Name:         emp.FullName(),
		Email:        email,
		Phone:        emp.Phone,
		Role:         user.Role(req.Role),
		Status:       user.StatusActive,
		PasswordHash: &hashed,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	resp := user.NewUserResponse(created)
	s.audit.Record(ctx, audit.ActionCreate, auditModel, created.ID, nil, resp)
	return resp, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	existing, err := s.userRepository.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if !strings.EqualFold(existing.Email, req.Email) {
		if err := s.ensureEmailFree(ctx, req.Email); err != nil {
			return user.UserResponse{}, err
		}
	}

	changed := existing
	changed.Name = req.Name
	changed.Email = req.Email
	changed.Phone = req.Phone
	changed.Role = user.Role(req.Role)
	changed.Status = user.Status(req.Status)

	updated, err := s.userRepository.Update(ctx, changed)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Password != nil && *req.Password != "" {
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			return user.UserResponse{}, err
		}
		if err := s.userRepository.UpdatePassword(ctx, updated.ID, hashed); err != nil {
			return user.UserResponse{}, err
		}
	}

	resp := user.NewUserResponse(updated)
	s.audit.Record(ctx, audit.ActionUpdate, auditModel, updated.ID, user.NewUserResponse(existing), resp)
	return resp, nil
}

// DeleteUser implements user.UserService.
func (s *userServiceImpl) DeleteUser(ctx context.Context, id string) error {
	if actor, ok := user.ActorFromContext(ctx); ok && actor.UserID == id {
		return user.ErrCannotDeleteSelf
	}

	existing, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsSuperAdmin() {
		return user.ErrCannotDeleteSuperAdmin
	}

	if err := s.userRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionDelete, auditModel, id, user.NewUserResponse(existing), nil)
	return nil
}

func (s *userServiceImpl) ListHRUsers(ctx context.Context) ([]user.UserResponse, error) {
	role := string(user.RoleHR)
	return s.ListUsers(ctx, user.ListUserFilter{Role: &role})
}

// CreateHRUser opens an hr account with a generated password.
func (s *userServiceImpl) CreateHRUser(ctx context.Context, req user.CreateHRUserRequest) (user.CreateHRUserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.CreateHRUserResponse{}, err
	}
	if err := s.ensureEmailFree(ctx, req.Email); err != nil {
		return user.CreateHRUserResponse{}, err
	}

	password, err := generatePassword()
	if err != nil {
		return user.CreateHRUserResponse{}, err
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return user.CreateHRUserResponse{}, err
	}

	created, err := s.userRepository.Create(ctx, user.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         user.RoleHR,
		Status:       user.StatusActive,
		PasswordHash: &hashed,
	})
	if err != nil {
		return user.CreateHRUserResponse{}, err
	}

	resp := user.NewUserResponse(created)
	s.audit.Record(ctx, audit.ActionCreate, auditModel, created.ID, nil, resp)
	return user.CreateHRUserResponse{User: resp, Password: password}, nil
}

func (s *userServiceImpl) DeactivateHRUser(ctx context.Context, id string) error {
	existing, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Role != user.RoleHR {
		return user.ErrNotHRUser
	}

	if err := s.userRepository.UpdateStatus(ctx, id, user.StatusInactive); err != nil {
		return err
	}

	after := existing
	after.Status = user.StatusInactive
	s.audit.Record(ctx, audit.ActionDeactivate, auditModel, id, user.NewUserResponse(existing), user.NewUserResponse(after))
	return nil
}

// UpsertEmployeeAccount implements user.UserService.
func (s *userServiceImpl) UpsertEmployeeAccount(ctx context.Context, account user.EmployeeAccount) (user.UserResponse, error) {
	if account.Email == "" {
		return user.UserResponse{}, user.ErrEmployeeLoginUnresolved
	}

	var passwordHash *string
	if account.Password != "" {
		hashed, err := hashPassword(account.Password)
		if err != nil {
			return user.UserResponse{}, err
		}
		passwordHash = &hashed
	}

	existing, err := s.userRepository.GetByEmployeeID(ctx, account.EmployeeID)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, err
	}

	if errors.Is(err, user.ErrUserNotFound) {
		if err := s.ensureEmailFree(ctx, account.Email); err != nil {
			return user.UserResponse{}, err
		}
		created, err := s.userRepository.Create(ctx, user.User{
			EmployeeID:   &account.EmployeeID,
			Name:         account.Name,
			Email:        account.Email,
			Phone:        account.Phone,
			Role:         user.RoleEmployee,
			Status:       user.StatusActive,
			PasswordHash: passwordHash,
		})
		if err != nil {
			return user.UserResponse{}, err
		}
		slog.Info("Employee portal account created", "user_id", created.ID, "employee_id", account.EmployeeID)
		return user.NewUserResponse(created), nil
	}

	if !strings.EqualFold(existing.Email, account.Email) {
		if err := s.ensureEmailFree(ctx, account.Email); err != nil {
			return user.UserResponse{}, err
		}
	}

	changed := existing
	changed.Name = account.Name
	changed.Email = account.Email
	changed.Phone = account.Phone
	updated, err := s.userRepository.Update(ctx, changed)
	if err != nil {
		return user.UserResponse{}, err
	}
	if passwordHash != nil {
		if err := s.userRepository.UpdatePassword(ctx, updated.ID, *passwordHash); err != nil {
			return user.UserResponse{}, err
		}
	}
	return user.NewUserResponse(updated), nil
}
