package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrUserInactive            = errors.New("user account is inactive")
	ErrCannotDeleteSelf        = errors.New("you cannot delete your own account")
	ErrCannotDeleteSuperAdmin  = errors.New("superadmin accounts cannot be deleted")
	ErrNotHRUser               = errors.New("user is not an hr account")
	ErrEmployeeLoginUnresolved = errors.New("employee has neither email nor unique id")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrEmployeeHasAccount      = errors.New("employee already has a user account")
)
