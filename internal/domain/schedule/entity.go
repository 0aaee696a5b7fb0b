package schedule

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/timeofday"
)

// Schedule is the expected shift of an employee.
type Schedule struct {
	ID        string
	Name      string
	TimeIn    timeofday.TimeOfDay
	TimeOut   timeofday.TimeOfDay
	CreatedAt time.Time
	UpdatedAt time.Time

	// Aggregate
	EmployeeCount int
}

// IsOvernight reports a shift that ends on the next calendar day.
func (s *Schedule) IsOvernight() bool {
	return s.TimeOut.Before(s.TimeIn)
}
