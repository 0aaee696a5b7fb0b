package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUniqueID(ctx context.Context, uniqueID string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	// ListActiveWithSchedule returns active employees ordered by first name.
	ListActiveWithSchedule(ctx context.Context) ([]WithSchedule, error)
	// ListWithScheduleByIDs returns the given employees whatever their status.
	ListWithScheduleByIDs(ctx context.Context, ids []string) ([]WithSchedule, error)
	ExistsByUniqueID(ctx context.Context, uniqueID string, excludeID *string) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	UpdateImage(ctx context.Context, id string, image string) error
	Delete(ctx context.Context, id string) error
}
