package leave

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type LeaveRequest struct {
	ID         string  `json:"-"`
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`

	start time.Time
	end   time.Time
}

// Validate checks the fields and the date range; it must pass before anything is stored.
func (r *LeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	validator.Required(&errs, "employee_id", r.EmployeeID)
	validator.Required(&errs, "leave_type", r.LeaveType)
	if len(r.LeaveType) > 50 {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type must not exceed 50 characters"})
	}

	start, startOK := utils.ParseDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, endOK := utils.ParseDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}

	if start.After(end) {
		return ErrInvalidDateRange
	}

	r.start, r.end = start, end
	return nil
}

// Range is only meaningful after Validate succeeded.
func (r *LeaveRequest) Range() (time.Time, time.Time) {
	return r.start, r.end
}

type ProcessLeaveRequest struct {
	ID     string `json:"-"`
	Action string `json:"action"`
}

func (r *ProcessLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	validator.Required(&errs, "id", r.ID)
	if len(errs) > 0 {
		return errs
	}
	if r.Action != "approve" && r.Action != "reject" {
		return ErrInvalidAction
	}
	return nil
}

// TargetStatus maps the action onto the final leave status.
func (r *ProcessLeaveRequest) TargetStatus() Status {
	if r.Action == "approve" {
		return StatusApproved
	}
	return StatusRejected
}

type LeaveFilter struct {
	Status     *string
	EmployeeID *string
	// Report bounds: only leaves lying fully inside [From, To].
	From *time.Time
	To   *time.Time
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Reason       *string `json:"reason,omitempty"`
	Status       string  `json:"status"`
	ProcessedBy  *string `json:"processed_by,omitempty"`
	ProcessedAt  *string `json:"processed_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func NewLeaveResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		LeaveType:    l.LeaveType,
		StartDate:    l.StartDate.Format(utils.DateLayout),
		EndDate:      l.EndDate.Format(utils.DateLayout),
		Days:         l.Days(),
		Reason:       l.Reason,
		Status:       string(l.Status),
		ProcessedBy:  l.ProcessedBy,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
	if l.ProcessedAt != nil {
		at := l.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &at
	}
	return resp
}

type BalanceResponse struct {
	EmployeeID string    `json:"employee_id"`
	Year       int       `json:"year"`
	Balances   []Balance `json:"balances"`
}
