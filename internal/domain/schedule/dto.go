package schedule

import (
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type ScheduleRequest struct {
	ID      string `json:"-"`
	Name    string `json:"name" validate:"required,max=100"`
	TimeIn  string `json:"time_in" validate:"required,hhmm"`
	TimeOut string `json:"time_out" validate:"required,hhmm"`
}

func (r *ScheduleRequest) Validate() error {
	return validator.Struct(r)
}

// Times is only meaningful after Validate succeeded.
func (r *ScheduleRequest) Times() (timeofday.TimeOfDay, timeofday.TimeOfDay) {
	in, _ := timeofday.Parse(r.TimeIn)
	out, _ := timeofday.Parse(r.TimeOut)
	return in, out
}

type ScheduleResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	TimeIn        timeofday.TimeOfDay `json:"time_in"`
	TimeOut       timeofday.TimeOfDay `json:"time_out"`
	Overnight     bool                `json:"overnight"`
	EmployeeCount int                 `json:"employee_count"`
}

func NewScheduleResponse(s Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:            s.ID,
		Name:          s.Name,
		TimeIn:        s.TimeIn,
		TimeOut:       s.TimeOut,
		Overnight:     s.IsOvernight(),
		EmployeeCount: s.EmployeeCount,
	}
}
