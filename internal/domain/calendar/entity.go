package calendar

import "time"

// Weekday indexes run 0=Monday through 6=Sunday.
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type WorkingDayConfig struct {
	ID           string
	Weekday      int
	DayName      string
	IsWorkingDay bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DefaultWorkingDay is the built-in policy for a weekday without a stored row:
// Monday through Friday are working days.
func DefaultWorkingDay(weekday int) WorkingDayConfig {
	return WorkingDayConfig{
		Weekday:      weekday,
		DayName:      DayNames[weekday],
		IsWorkingDay: weekday < 5,
	}
}

func IsValidWeekday(weekday int) bool {
	return weekday >= 0 && weekday <= 6
}

type Holiday struct {
	ID          string
	Name        string
	Date        time.Time
	Description *string
	Type        *string
	IsPaid      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
