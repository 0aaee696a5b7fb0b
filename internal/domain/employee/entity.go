package employee

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/timeofday"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

var GenderValues = []string{string(Male), string(Female), string(Other)}

type Employee struct {
	ID            string
	DepartmentID  *string
	DesignationID *string
	ScheduleID    *string
	FirstName     string
	LastName      string
	UniqueID      *string
	Email         *string
	Phone         *string
	Address       *string
	DOB           *time.Time
	Gender        *Gender
	Religion      *string
	Marital       *string
	Image         *string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	DepartmentName  *string
	DesignationName *string
	ScheduleName    *string
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// WithSchedule is an employee together with the expected shift, if one is assigned.
type WithSchedule struct {
	Employee
	ScheduleTimeIn  *timeofday.TimeOfDay
	ScheduleTimeOut *timeofday.TimeOfDay
}
