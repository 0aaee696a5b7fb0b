package dashboard

import "context"

type DashboardService interface {
	// GetDashboard builds the summary for the caller's role.
	GetDashboard(ctx context.Context) (DashboardResponse, error)
	GetEmployeeDashboard(ctx context.Context, employeeID string) (EmployeeDashboardResponse, error)
}
