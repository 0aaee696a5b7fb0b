package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type CheckRequest struct {
	EmployeeID string `json:"employee_id"`
	Action     string `json:"action"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors
	validator.Required(&errs, "employee_id", r.EmployeeID)
	if len(errs) > 0 {
		return errs
	}
	if r.Action != string(CheckIn) && r.Action != string(CheckOut) {
		return ErrInvalidAction
	}
	return nil
}

// ManualAttendanceRequest creates or edits a row by hand. Malformed dates and
// times never fail the request: see ResolveDate and Times.
type ManualAttendanceRequest struct {
	ID          string  `json:"-"`
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	TimeIn      string  `json:"time_in"`
	TimeOut     string  `json:"time_out"`
	Status      string  `json:"status"`
	Description *string `json:"description,omitempty"`
}

func (r *ManualAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID == "" {
		validator.Required(&errs, "employee_id", r.EmployeeID)
	}
	if r.Status != "" && !validator.IsInSlice(r.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, holiday, weekend, leave",
		})
	}

	return errs.Err()
}

// ResolveDate returns the requested date, or fallback when it is missing or malformed.
func (r *ManualAttendanceRequest) ResolveDate(fallback time.Time) time.Time {
	return utils.ParseDateOr(r.Date, fallback)
}

// Times parses HH:MM values; anything unparsable becomes nil.
func (r *ManualAttendanceRequest) Times() (*timeofday.TimeOfDay, *timeofday.TimeOfDay) {
	return timeofday.ParseOptional(r.TimeIn), timeofday.ParseOptional(r.TimeOut)
}

// MaxGenerateDays bounds one generation request, inclusive of both ends.
const MaxGenerateDays = 366

type GenerateRequest struct {
	// EmployeeID limits generation to one employee; empty means every active employee.
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// Range resolves the dates, defaulting each missing or malformed one to today.
func (r *GenerateRequest) Range(today time.Time) (time.Time, time.Time, error) {
	start := utils.ParseDateOr(r.StartDate, today)
	end := utils.ParseDateOr(r.EndDate, today)
	if start.After(end) {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date cannot be before start_date",
		}}
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > MaxGenerateDays {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: fmt.Sprintf("range cannot span more than %d days", MaxGenerateDays),
		}}
	}
	return start, end, nil
}

// GenerateResult counts outcomes per (employee, day) pair.
type GenerateResult struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Employees int    `json:"employees"`
	Created   int    `json:"created"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

func (r *GenerateResult) Add(other GenerateResult) {
	r.Created += other.Created
	r.Skipped += other.Skipped
	r.Failed += other.Failed
}

type AttendanceFilter struct {
	EmployeeID *string
	From       *time.Time
	To         *time.Time
	Limit      int
}

type MonthlyReportRequest struct {
	Year       int
	Month      int
	EmployeeID *string
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: ErrInvalidMonth.Error()})
	}
	if r.Year < 1970 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	return errs.Err()
}

type RangeReportRequest struct {
	StartDate string
	EndDate   string
}

// Bounds returns nil bounds unless both dates parse, in which case all rows are reported.
func (r *RangeReportRequest) Bounds() (*time.Time, *time.Time) {
	start, okStart := utils.ParseDate(r.StartDate)
	end, okEnd := utils.ParseDate(r.EndDate)
	if !okStart || !okEnd {
		return nil, nil
	}
	return &start, &end
}

type AttendanceResponse struct {
	ID           string               `json:"id"`
	EmployeeID   string               `json:"employee_id"`
	EmployeeName string               `json:"employee_name,omitempty"`
	Date         string               `json:"date"`
	TimeIn       *timeofday.TimeOfDay `json:"time_in"`
	TimeOut      *timeofday.TimeOfDay `json:"time_out"`
	Status       string               `json:"status"`
	Description  *string              `json:"description,omitempty"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format(utils.DateLayout),
		TimeIn:       a.TimeIn,
		TimeOut:      a.TimeOut,
		Status:       string(a.Status),
		Description:  a.Description,
	}
}

func NewAttendanceResponses(rows []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, 0, len(rows))
	for _, a := range rows {
		resp = append(resp, NewAttendanceResponse(a))
	}
	return resp
}

type DailyAttendanceResponse struct {
	Date        string               `json:"date"`
	Generation  GenerateResult       `json:"generation"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type BoardEntry struct {
	EmployeeID   string              `json:"employee_id"`
	EmployeeName string              `json:"employee_name"`
	UniqueID     *string             `json:"unique_id,omitempty"`
	Attendance   *AttendanceResponse `json:"attendance"`
}

type BoardResponse struct {
	Date    string       `json:"date"`
	Entries []BoardEntry `json:"entries"`
}

type MonthlyReportResponse struct {
	Year      int                  `json:"year"`
	Month     int                  `json:"month"`
	MonthName string               `json:"month_name"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Stats     []MonthlyStats       `json:"stats"`
	Rows      []AttendanceResponse `json:"rows"`
}

// Export is a rendered report file.
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}
