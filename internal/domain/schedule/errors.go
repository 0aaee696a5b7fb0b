package schedule

import "errors"

var (
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrScheduleNameExists = errors.New("schedule with this name already exists")
)
