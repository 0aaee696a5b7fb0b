package calendar

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type WorkingDayResponse struct {
	Weekday      int    `json:"weekday"`
	DayName      string `json:"day_name"`
	IsWorkingDay bool   `json:"is_working_day"`
}

func NewWorkingDayResponse(c WorkingDayConfig) WorkingDayResponse {
	return WorkingDayResponse{Weekday: c.Weekday, DayName: c.DayName, IsWorkingDay: c.IsWorkingDay}
}

type HolidayRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name" validate:"required,max=100"`
	Date        string  `json:"date" validate:"required,date"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty" validate:"omitempty,max=50"`
	IsPaid      *bool   `json:"is_paid,omitempty"`
}

func (r *HolidayRequest) Validate() error {
	return validator.Struct(r)
}

// ParsedDate is only meaningful after Validate succeeded.
func (r *HolidayRequest) ParsedDate() time.Time {
	d, _ := utils.ParseDate(r.Date)
	return d
}

// Paid defaults to true when the client did not say.
func (r *HolidayRequest) Paid() bool {
	return r.IsPaid == nil || *r.IsPaid
}

type HolidayResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
	IsPaid      bool    `json:"is_paid"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date.Format(utils.DateLayout),
		Description: h.Description,
		Type:        h.Type,
		IsPaid:      h.IsPaid,
	}
}

// HolidayChange reports which dates a holiday mutation touched.
type HolidayChange struct {
	Holiday      HolidayResponse
	AffectedDays []time.Time
}
