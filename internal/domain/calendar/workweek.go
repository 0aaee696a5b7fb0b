package calendar

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
)

// WorkWeek is the resolved working-day policy for all seven weekdays.
type WorkWeek struct {
	working [7]bool
}

// NewWorkWeek resolves stored configs; weekdays without a config use DefaultWorkingDay.
func NewWorkWeek(configs []WorkingDayConfig) WorkWeek {
	var w WorkWeek
	for i := range w.working {
		w.working[i] = DefaultWorkingDay(i).IsWorkingDay
	}
	for _, c := range configs {
		if IsValidWeekday(c.Weekday) {
			w.working[c.Weekday] = c.IsWorkingDay
		}
	}
	return w
}

// DefaultWorkWeek is Monday through Friday.
func DefaultWorkWeek() WorkWeek {
	return NewWorkWeek(nil)
}

func (w WorkWeek) IsWorkingDay(date time.Time) bool {
	return w.IsWorkingWeekday(utils.MondayIndex(date.Weekday()))
}

func (w WorkWeek) IsWorkingWeekday(weekday int) bool {
	if !IsValidWeekday(weekday) {
		return false
	}
	return w.working[weekday]
}
