package designation

import "context"

type DesignationRepository interface {
	Create(ctx context.Context, v Designation) (Designation, error)
	GetByID(ctx context.Context, id string) (Designation, error)
	List(ctx context.Context) ([]Designation, error)
	ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error)
	Update(ctx context.Context, v Designation) (Designation, error)
	Delete(ctx context.Context, id string) error
}
