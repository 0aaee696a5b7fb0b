package dashboard

import (
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ========== STAFF DASHBOARD ==========

// DashboardResponse is the summary shown to staff roles. Sections a role
// cannot see are left nil.
type DashboardResponse struct {
	Role            string                     `json:"role"`
	Date            string                     `json:"date"`
	Employees       *EmployeeSummary           `json:"employees,omitempty"`
	Departments     *int64                     `json:"departments,omitempty"`
	Users           *int64                     `json:"users,omitempty"`
	TodayAttendance *AttendanceSummary         `json:"today_attendance,omitempty"`
	PendingLeaves   *int64                     `json:"pending_leaves,omitempty"`
	MonthlyPayroll  *PayrollSummary            `json:"monthly_payroll,omitempty"`
	EmployeePortal  *EmployeeDashboardResponse `json:"employee_portal,omitempty"`
}

type EmployeeSummary struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// AttendanceSummary counts the rows of one day by status.
type AttendanceSummary struct {
	Present  int64 `json:"present"`
	Absent   int64 `json:"absent"`
	Leave    int64 `json:"leave"`
	Holiday  int64 `json:"holiday"`
	Weekend  int64 `json:"weekend"`
	Recorded int64 `json:"recorded"`
}

type PayrollSummary struct {
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Count    int64           `json:"count"`
	TotalNet decimal.Decimal `json:"total_net"`
}

// ========== EMPLOYEE SELF-SERVICE ==========

type EmployeeDashboardResponse struct {
	EmployeeID        string                          `json:"employee_id"`
	RecentAttendance  []attendance.AttendanceResponse `json:"recent_attendance"`
	RecentLeaves      []leave.LeaveResponse           `json:"recent_leaves"`
	RecentPayrolls    []payroll.PayrollResponse       `json:"recent_payrolls"`
	LeaveBalance      []leave.Balance                 `json:"leave_balance"`
	PresentThisMonth  int64                           `json:"present_this_month"`
	PendingLeaves     int64                           `json:"pending_leaves"`
	ApprovedLeavesYTD int64                           `json:"approved_leaves_ytd"`
}

// Recent list sizes on the employee dashboard.
const (
	RecentAttendanceLimit = 7
	RecentLeaveLimit      = 5
	RecentPayrollLimit    = 6
)
