package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWorkWeek(t *testing.T) {
	w := DefaultWorkWeek()

	// 2024-03-04 is a Monday
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		assert.True(t, w.IsWorkingDay(monday.AddDate(0, 0, i)), monday.AddDate(0, 0, i).Weekday())
	}
	assert.False(t, w.IsWorkingDay(monday.AddDate(0, 0, 5)))
	assert.False(t, w.IsWorkingDay(monday.AddDate(0, 0, 6)))
}

func TestNewWorkWeek_StoredConfigOverridesDefault(t *testing.T) {
	w := NewWorkWeek([]WorkingDayConfig{
		{Weekday: 4, IsWorkingDay: false}, // Friday off
		{Weekday: 5, IsWorkingDay: true},  // Saturday on
	})

	friday := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.False(t, w.IsWorkingDay(friday))
	assert.True(t, w.IsWorkingDay(friday.AddDate(0, 0, 1)))
	assert.False(t, w.IsWorkingDay(friday.AddDate(0, 0, 2)))
	assert.True(t, w.IsWorkingWeekday(0))
}

func TestNewWorkWeek_IgnoresOutOfRangeWeekday(t *testing.T) {
	w := NewWorkWeek([]WorkingDayConfig{{Weekday: 9, IsWorkingDay: true}})
	assert.Equal(t, DefaultWorkWeek(), w)
	assert.False(t, w.IsWorkingWeekday(9))
}

func TestDefaultWorkingDay(t *testing.T) {
	assert.Equal(t, "Monday", DefaultWorkingDay(0).DayName)
	assert.True(t, DefaultWorkingDay(4).IsWorkingDay)
	assert.False(t, DefaultWorkingDay(6).IsWorkingDay)
}
