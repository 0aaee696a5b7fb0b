package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave not found")
	ErrInvalidDateRange      = errors.New("start date cannot be after end date")
	ErrOverlappingLeave      = errors.New("employee already has an approved or pending leave in this date range")
	ErrLeaveAlreadyProcessed = errors.New("leave has already been approved or rejected")
	ErrInvalidAction         = errors.New("action must be approve or reject")
	ErrNotLeaveOwner         = errors.New("you can only manage your own leave requests")
)
