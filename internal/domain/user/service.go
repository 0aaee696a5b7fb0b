package user

import "context"

type UserService interface {
	ListUsers(ctx context.Context, filter ListUserFilter) ([]UserResponse, error)
	GetUser(ctx context.Context, id string) (UserResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	CreateFromEmployee(ctx context.Context, req CreateFromEmployeeRequest) (UserResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	// DeleteUser refuses to remove the caller's own account or any superadmin.
	DeleteUser(ctx context.Context, id string) error

	ListHRUsers(ctx context.Context) ([]UserResponse, error)
	CreateHRUser(ctx context.Context, req CreateHRUserRequest) (CreateHRUserResponse, error)
	DeactivateHRUser(ctx context.Context, id string) error

	// UpsertEmployeeAccount creates or refreshes the employee-role login linked to an employee.
	UpsertEmployeeAccount(ctx context.Context, account EmployeeAccount) (UserResponse, error)
}
