package user

type Permission string

const (
	PermissionDashboardView Permission = "dashboard.view"
	PermissionProfileView   Permission = "profile.view_own"

	// Leave
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveProcess Permission = "leave.process"

	// Attendance desk: listing, board, check in/out, manual edits and reports
	PermissionAttendanceManage Permission = "attendance.manage"

	// Working days and holidays
	PermissionCalendarManage Permission = "calendar.manage"

	// Employees, departments, designations, schedules
	PermissionEmployeeManage Permission = "employee.manage"

	PermissionPayrollManage Permission = "payroll.manage"

	PermissionUserManage Permission = "user.manage"
	PermissionHRManage   Permission = "hr.manage"
)

var basePermissions = []Permission{
	PermissionDashboardView,
	PermissionProfileView,
	PermissionLeaveCreate,
	PermissionLeaveViewOwn,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: append([]Permission{
		PermissionLeaveViewAll,
		PermissionLeaveProcess,
		PermissionAttendanceManage,
		PermissionCalendarManage,
		PermissionEmployeeManage,
		PermissionPayrollManage,
		PermissionUserManage,
		PermissionHRManage,
	}, basePermissions...),
	RoleAdmin: append([]Permission{
		PermissionLeaveViewAll,
		PermissionLeaveProcess,
		PermissionAttendanceManage,
		PermissionCalendarManage,
		PermissionEmployeeManage,
		PermissionPayrollManage,
		PermissionUserManage,
	}, basePermissions...),
	RoleHR: append([]Permission{
		PermissionLeaveViewAll,
		PermissionLeaveProcess,
		PermissionAttendanceManage,
		PermissionCalendarManage,
		PermissionEmployeeManage,
	}, basePermissions...),
	RolePayroll: append([]Permission{
		PermissionPayrollManage,
	}, basePermissions...),
	RoleModerator: append([]Permission{
		PermissionAttendanceManage,
	}, basePermissions...),
	RoleEmployee: basePermissions,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
