package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	// GetByEmployeeAndDate returns nil when the employee has no row for date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	// List returns rows ordered by date, then employee name.
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)
	// ExistingDates returns the dates in [start, end] that already have a row for the employee.
	ExistingDates(ctx context.Context, employeeID string, start, end time.Time) ([]time.Time, error)
	Update(ctx context.Context, a Attendance) (Attendance, error)
	Delete(ctx context.Context, id string) error
}
