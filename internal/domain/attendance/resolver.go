package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
)

const weekendDescription = "Weekend"

// DayFacts is everything the resolver needs to know about one employee on one date.
type DayFacts struct {
	// Existing is the row already stored for the day, if any.
	Existing *Attendance
	Holiday  *calendar.Holiday
	WorkWeek calendar.WorkWeek
	// ApprovedLeave is an approved leave of the employee covering the date.
	ApprovedLeave *leave.Leave
}

type Resolution struct {
	// Skip is set when a row already exists; nothing must be written.
	Skip        bool
	Status      Status
	Description *string
}

// Resolve derives the status of a day. The first matching rule wins:
// existing row, holiday, non-working weekday, approved leave, absent.
func Resolve(date time.Time, facts DayFacts) Resolution {
	switch {
	case facts.Existing != nil:
		return Resolution{Skip: true}
	case facts.Holiday != nil:
		name := facts.Holiday.Name
		return Resolution{Status: StatusHoliday, Description: &name}
	case !facts.WorkWeek.IsWorkingDay(date):
		desc := weekendDescription
		return Resolution{Status: StatusWeekend, Description: &desc}
	case facts.ApprovedLeave != nil && facts.ApprovedLeave.Status == leave.StatusApproved && facts.ApprovedLeave.Covers(date):
		desc := facts.ApprovedLeave.Description()
		return Resolution{Status: StatusLeave, Description: &desc}
	default:
		return Resolution{Status: StatusAbsent}
	}
}

// Row builds the attendance row a non-skipped resolution stands for.
func (r Resolution) Row(employeeID string, date time.Time) Attendance {
	return Attendance{
		EmployeeID:  employeeID,
		Date:        date,
		Status:      r.Status,
		Description: r.Description,
	}
}
