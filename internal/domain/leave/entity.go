package leave

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

type Leave struct {
	ID          string
	EmployeeID  string
	LeaveType   string
	StartDate   time.Time
	EndDate     time.Time // inclusive
	Reason      *string
	Status      Status
	ProcessedBy *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	EmployeeName string
}

func (l *Leave) IsPending() bool {
	return l.Status == StatusPending
}

// Covers reports whether date falls inside the inclusive leave range.
func (l *Leave) Covers(date time.Time) bool {
	d := utils.DateOf(date)
	return !d.Before(utils.DateOf(l.StartDate)) && !d.After(utils.DateOf(l.EndDate))
}

// Overlaps reports whether [start, end] intersects the leave range.
func (l *Leave) Overlaps(start, end time.Time) bool {
	return !utils.DateOf(l.StartDate).After(utils.DateOf(end)) && !utils.DateOf(l.EndDate).Before(utils.DateOf(start))
}

func (l *Leave) Days() int {
	return utils.DaysInclusive(l.StartDate, l.EndDate)
}

// Description is what attendance rows covered by this leave show.
func (l *Leave) Description() string {
	return l.LeaveType + " leave"
}
