package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
)

// DashboardRepository runs the count queries behind the dashboards. Each
// method is a single query so the service can run them concurrently.
type DashboardRepository interface {
	CountEmployees(ctx context.Context) (EmployeeSummary, error)
	CountDepartments(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountAttendanceByStatus(ctx context.Context, date time.Time) (AttendanceSummary, error)
	// CountLeaves counts leaves in status; employeeID and since narrow the count when set.
	CountLeaves(ctx context.Context, status leave.Status, employeeID *string, since *time.Time) (int64, error)
	SumPayroll(ctx context.Context, month, year int) (PayrollSummary, error)

	CountPresentDays(ctx context.Context, employeeID string, start, end time.Time) (int64, error)
	RecentAttendance(ctx context.Context, employeeID string, limit int) ([]attendance.Attendance, error)
	RecentLeaves(ctx context.Context, employeeID string, limit int) ([]leave.Leave, error)
	RecentPayrolls(ctx context.Context, employeeID string, limit int) ([]payroll.Payroll, error)
}
