package user

import "time"

type Role string

const (
	RoleSuperAdmin Role = "superadmin" // Full access, manages HR accounts
	RoleAdmin      Role = "admin"
	RoleHR         Role = "hr"
	RolePayroll    Role = "payroll"
	RoleModerator  Role = "moderator" // Attendance desk
	RoleEmployee   Role = "employee"  // Self-service portal
)

// Roles lists every role in seed order.
var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleHR, RolePayroll, RoleModerator, RoleEmployee}

func (r Role) IsValid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type User struct {
	ID              string
	EmployeeID      *string
	Name            string
	Email           string
	Phone           *string
	Role            Role
	Status          Status
	PasswordHash    *string
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// EmployeeLoginEmail is the address given to portal accounts of employees without an email.
func EmployeeLoginEmail(employeeEmail *string, uniqueID *string) string {
	if employeeEmail != nil && *employeeEmail != "" {
		return *employeeEmail
	}
	if uniqueID != nil && *uniqueID != "" {
		return *uniqueID + "@employee.local"
	}
	return ""
}
