package attendance

import (
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/timeofday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tod(h, m int) *timeofday.TimeOfDay {
	t := timeofday.New(h, m, 0)
	return &t
}

func dayShift() *Shift {
	return &Shift{TimeIn: timeofday.New(9, 0, 0), TimeOut: timeofday.New(17, 0, 0)}
}

func TestAggregate_CountsAndHours(t *testing.T) {
	rows := []Attendance{
		{EmployeeID: "e1", EmployeeName: "Ann", Date: day(2024, 3, 4), Status: StatusPresent, TimeIn: tod(9, 0), TimeOut: tod(17, 0)},
		{EmployeeID: "e1", EmployeeName: "Ann", Date: day(2024, 3, 5), Status: StatusPresent, TimeIn: tod(9, 15), TimeOut: tod(16, 30)},
		{EmployeeID: "e1", EmployeeName: "Ann", Date: day(2024, 3, 6), Status: StatusPresent, TimeIn: tod(8, 55)},
		{EmployeeID: "e1", EmployeeName: "Ann", Date: day(2024, 3, 7), Status: StatusAbsent},
	}

	stats := Aggregate(rows, []Member{{EmployeeID: "e1", Name: "Ann", Shift: dayShift()}})
	require.Len(t, stats, 1)

	s := stats[0]
	assert.Equal(t, 3, s.Present)
	assert.Equal(t, 1, s.Absent)
	assert.Equal(t, 1, s.Late)
	assert.Equal(t, 1, s.EarlyOut)
	assert.Equal(t, 15.25, s.WorkingHours)
	assert.Equal(t, 75.0, s.AttendancePercentage)
}

func TestAggregate_AbsentBucketAbsorbsNonPresentStatuses(t *testing.T) {
	rows := []Attendance{
		{EmployeeID: "e1", Status: StatusPresent},
		{EmployeeID: "e1", Status: StatusHoliday},
		{EmployeeID: "e1", Status: StatusWeekend},
		{EmployeeID: "e1", Status: StatusLeave},
	}

	stats := Aggregate(rows, nil)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Present)
	assert.Equal(t, 3, stats[0].Absent)
	assert.Equal(t, 25.0, stats[0].AttendancePercentage)
}

func TestAggregate_MemberWithoutRowsReportsZero(t *testing.T) {
	stats := Aggregate(nil, []Member{{EmployeeID: "e9", Name: "Zed"}})

	require.Len(t, stats, 1)
	assert.Equal(t, "e9", stats[0].EmployeeID)
	assert.Equal(t, 0.0, stats[0].AttendancePercentage)
	assert.Equal(t, 0, stats[0].Present+stats[0].Absent)
}

func TestAggregate_NoScheduleMeansNoLateness(t *testing.T) {
	rows := []Attendance{
		{EmployeeID: "e1", Status: StatusPresent, TimeIn: tod(11, 0), TimeOut: tod(12, 0)},
	}
	stats := Aggregate(rows, []Member{{EmployeeID: "e1", Name: "Ann"}})

	assert.Equal(t, 0, stats[0].Late)
	assert.Equal(t, 0, stats[0].EarlyOut)
	assert.Equal(t, 1.0, stats[0].WorkingHours)
}

func TestAggregate_NightShiftUsesNaiveSameDayComparison(t *testing.T) {
	night := &Shift{TimeIn: timeofday.New(22, 0, 0), TimeOut: timeofday.New(6, 0, 0)}
	rows := []Attendance{
		// On time for a 22:00-06:00 shift, yet the same-day comparison sees an
		// early-out-free day with negative hours.
		{EmployeeID: "e2", Status: StatusPresent, TimeIn: tod(22, 0), TimeOut: tod(6, 0)},
		// Arrived 21:50, left 05:30: flagged early-out, not late.
		{EmployeeID: "e2", Status: StatusPresent, TimeIn: tod(21, 50), TimeOut: tod(5, 30)},
	}

	stats := Aggregate(rows, []Member{{EmployeeID: "e2", Name: "Nia", Shift: night}})
	require.Len(t, stats, 1)
	assert.Equal(t, 0, stats[0].Late)
	assert.Equal(t, 1, stats[0].EarlyOut)
	assert.Equal(t, -32.33, stats[0].WorkingHours)
}

func TestAggregate_SortedByName(t *testing.T) {
	rows := []Attendance{
		{EmployeeID: "b", EmployeeName: "Bo", Status: StatusAbsent},
		{EmployeeID: "a", EmployeeName: "Al", Status: StatusAbsent},
	}
	stats := Aggregate(rows, nil)
	require.Len(t, stats, 2)
	assert.Equal(t, "Al", stats[0].EmployeeName)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 100.0, Percentage(3, 0))
	assert.Equal(t, 66.67, Percentage(2, 1))
}
