package calendar

import "errors"

var (
	ErrInvalidWeekday     = errors.New("weekday must be between 0 (Monday) and 6 (Sunday)")
	ErrHolidayNotFound    = errors.New("holiday not found")
	ErrWorkingDayExists   = errors.New("working day configuration already exists")
	ErrWorkingDayNotFound = errors.New("working day configuration not found")
)
