package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

var notFoundErrors = []error{
	auth.ErrUserNotFound,
	user.ErrUserNotFound,
	employee.ErrEmployeeNotFound,
	department.ErrDepartmentNotFound,
	designation.ErrDesignationNotFound,
	schedule.ErrScheduleNotFound,
	calendar.ErrHolidayNotFound,
	calendar.ErrWorkingDayNotFound,
	leave.ErrLeaveNotFound,
	attendance.ErrAttendanceNotFound,
	attendance.ErrNoCheckIn,
	payroll.ErrSalaryNotFound,
	payroll.ErrPayrollNotFound,
}

var conflictErrors = []error{
	user.ErrUserEmailExists,
	user.ErrEmployeeHasAccount,
	employee.ErrUniqueIDExists,
	employee.ErrEmailExists,
	department.ErrDepartmentNameExists,
	designation.ErrDesignationNameExists,
	schedule.ErrScheduleNameExists,
	calendar.ErrWorkingDayExists,
	leave.ErrOverlappingLeave,
	leave.ErrLeaveAlreadyProcessed,
	payroll.ErrPayrollAlreadyExists,
	payroll.ErrPayrollAlreadyPaid,
}

var badRequestErrors = []error{
	calendar.ErrInvalidWeekday,
	leave.ErrInvalidDateRange,
	leave.ErrInvalidAction,
	attendance.ErrInvalidAction,
	attendance.ErrInvalidMonth,
	employee.ErrInvalidImageType,
	employee.ErrImageTooLarge,
	employee.ErrPortalLoginMissing,
	employee.ErrUnknownReference,
	user.ErrEmployeeLoginUnresolved,
	user.ErrNotHRUser,
	payroll.ErrEmployeeHasNoSalary,
	auth.ErrWrongPassword,
	auth.ErrInvalidOAuthState,
	auth.ErrGoogleNotConfigured,
}

var forbiddenErrors = []error{
	user.ErrInsufficientPermissions,
	user.ErrCannotDeleteSelf,
	user.ErrCannotDeleteSuperAdmin,
	leave.ErrNotLeaveOwner,
	auth.ErrAccountInactive,
	auth.ErrGoogleAccountUnknown,
}

var unauthorizedErrors = []error{
	auth.ErrInvalidCredentials,
	auth.ErrInvalidToken,
	auth.ErrRefreshTokenRevoked,
	auth.ErrUnauthenticated,
}

func matchAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case matchAny(err, unauthorizedErrors):
		Unauthorized(w, err.Error())
	case matchAny(err, forbiddenErrors):
		Forbidden(w, err.Error())
	case matchAny(err, notFoundErrors):
		NotFound(w, err.Error())
	case matchAny(err, conflictErrors):
		Conflict(w, err.Error())
	case matchAny(err, badRequestErrors):
		BadRequest(w, err.Error(), nil)
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
