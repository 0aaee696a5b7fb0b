package leave

import (
	"context"
	"time"
)

type LeaveService interface {
	CreateLeave(ctx context.Context, req LeaveRequest) (LeaveResponse, error)
	UpdateLeave(ctx context.Context, req LeaveRequest) (LeaveResponse, error)
	ProcessLeave(ctx context.Context, req ProcessLeaveRequest) (LeaveResponse, error)
	DeleteLeave(ctx context.Context, id string) error
	GetLeave(ctx context.Context, id string) (LeaveResponse, error)
	ListLeaves(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, error)
	LeaveReport(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, error)
	LeaveBalance(ctx context.Context, employeeID string, year int) (BalanceResponse, error)
	FindApprovedCovering(ctx context.Context, employeeID string, date time.Time) (*Leave, error)
}
