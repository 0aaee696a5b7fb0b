package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNoCheckIn          = errors.New("no check-in record found")
	ErrInvalidAction      = errors.New("action must be in or out")
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
)
