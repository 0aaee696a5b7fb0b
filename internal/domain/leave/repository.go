package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	Update(ctx context.Context, l Leave) (Leave, error)
	// UpdateStatus moves a pending leave to status; it returns ErrLeaveAlreadyProcessed
	// when the row is no longer pending.
	UpdateStatus(ctx context.Context, id string, status Status, processedBy *string, processedAt time.Time) (Leave, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter LeaveFilter) ([]Leave, error)
	// HasOverlap looks for a non-rejected leave of the employee intersecting [start, end].
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error)
	// FindApprovedCovering returns nil when no approved leave covers date.
	FindApprovedCovering(ctx context.Context, employeeID string, date time.Time) (*Leave, error)
	ListApprovedBetween(ctx context.Context, employeeID string, start, end time.Time) ([]Leave, error)
}
