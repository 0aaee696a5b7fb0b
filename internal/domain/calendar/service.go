package calendar

import (
	"context"
	"time"
)

type CalendarService interface {
	// ListWorkingDays returns all seven weekdays, storing default rows for missing ones.
	ListWorkingDays(ctx context.Context) ([]WorkingDayResponse, error)
	ToggleWorkingDay(ctx context.Context, weekday int) (WorkingDayResponse, error)
	WorkWeek(ctx context.Context) (WorkWeek, error)

	ListHolidays(ctx context.Context) ([]HolidayResponse, error)
	GetHoliday(ctx context.Context, id string) (HolidayResponse, error)
	HolidayOn(ctx context.Context, date time.Time) (*Holiday, error)

	CreateHoliday(ctx context.Context, req HolidayRequest) (HolidayChange, error)
	UpdateHoliday(ctx context.Context, req HolidayRequest) (HolidayChange, error)
	DeleteHoliday(ctx context.Context, id string) (HolidayChange, error)
}
