package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, v Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	List(ctx context.Context) ([]Department, error)
	ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error)
	Update(ctx context.Context, v Department) (Department, error)
	Delete(ctx context.Context, id string) error
}
