package calendar

import (
	"context"
	"time"
)

type WorkingDayRepository interface {
	List(ctx context.Context) ([]WorkingDayConfig, error)
	GetByWeekday(ctx context.Context, weekday int) (WorkingDayConfig, error)
	Create(ctx context.Context, config WorkingDayConfig) (WorkingDayConfig, error)
	SetWorkingDay(ctx context.Context, weekday int, isWorkingDay bool) (WorkingDayConfig, error)
}

type HolidayRepository interface {
	List(ctx context.Context) ([]Holiday, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	// GetByDate returns ErrHolidayNotFound when date is not a holiday.
	GetByDate(ctx context.Context, date time.Time) (Holiday, error)
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Update(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
}
