package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/timeofday"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHoliday Status = "holiday"
	StatusWeekend Status = "weekend"
	StatusLeave   Status = "leave"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusHoliday),
	string(StatusWeekend),
	string(StatusLeave),
}

// Attendance is the status of one employee on one calendar day. Rows are unique
// per (employee, date) by convention only.
type Attendance struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	TimeIn      *timeofday.TimeOfDay
	TimeOut     *timeofday.TimeOfDay
	Status      Status
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	EmployeeName string
}

type CheckAction string

const (
	CheckIn  CheckAction = "in"
	CheckOut CheckAction = "out"
)
