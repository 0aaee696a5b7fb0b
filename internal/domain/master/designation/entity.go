package designation

import "time"

type Designation struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Aggregate
	EmployeeCount int
}
