package attendance

import (
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/timeofday"
)

// Shift is the expected time window used for lateness and early-out checks.
type Shift struct {
	TimeIn  timeofday.TimeOfDay
	TimeOut timeofday.TimeOfDay
}

// Member is an employee included in a report, with the shift they are held to.
type Member struct {
	EmployeeID string
	Name       string
	Shift      *Shift
}

type MonthlyStats struct {
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	Present      int           `json:"present"`
	Absent       int           `json:"absent"`
	Late         int           `json:"late"`
	EarlyOut     int           `json:"early_out"`
	WorkingTime  time.Duration `json:"-"`
	WorkingHours float64       `json:"working_hours"`
	// AttendancePercentage is present / (present + absent) * 100, or 0 without rows.
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// Aggregate computes per-employee monthly counters from attendance rows. Every
// member gets an entry even without rows; rows of non-members are counted too.
//
// Every status other than present counts as absent, so holidays, weekends and
// leave days lower the percentage. Times are compared on the same calendar day:
// a night shift (22:00-06:00) yields negative working time and its lateness and
// early-out flags are unreliable.
func Aggregate(rows []Attendance, members []Member) []MonthlyStats {
	byEmployee := make(map[string]*MonthlyStats, len(members))
	shifts := make(map[string]Shift, len(members))

	for _, m := range members {
		byEmployee[m.EmployeeID] = &MonthlyStats{EmployeeID: m.EmployeeID, EmployeeName: m.Name}
		if m.Shift != nil {
			shifts[m.EmployeeID] = *m.Shift
		}
	}

	for _, row := range rows {
		stats, ok := byEmployee[row.EmployeeID]
		if !ok {
			stats = &MonthlyStats{EmployeeID: row.EmployeeID, EmployeeName: row.EmployeeName}
			byEmployee[row.EmployeeID] = stats
		}

		if row.Status != StatusPresent {
			stats.Absent++
			continue
		}

		stats.Present++
		if row.TimeIn == nil || row.TimeOut == nil {
			continue
		}

		stats.WorkingTime += row.TimeOut.Sub(*row.TimeIn)
		if shift, ok := shifts[row.EmployeeID]; ok {
			if row.TimeIn.After(shift.TimeIn) {
				stats.Late++
			}
			if row.TimeOut.Before(shift.TimeOut) {
				stats.EarlyOut++
			}
		}
	}

	result := make([]MonthlyStats, 0, len(byEmployee))
	for _, stats := range byEmployee {
		stats.WorkingHours = round2(stats.WorkingTime.Hours())
		stats.AttendancePercentage = Percentage(stats.Present, stats.Absent)
		result = append(result, *stats)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].EmployeeName != result[j].EmployeeName {
			return result[i].EmployeeName < result[j].EmployeeName
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result
}

// Percentage guards the empty case so callers never divide by zero.
func Percentage(present, absent int) float64 {
	total := present + absent
	if total == 0 {
		return 0
	}
	return round2(float64(present) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
