package leave

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
)

// YearlyAllowance is the number of leave days granted per year by type.
var YearlyAllowance = map[string]int{
	"annual": 20,
	"sick":   10,
	"casual": 7,
}

type Balance struct {
	LeaveType string `json:"leave_type"`
	Allowance int    `json:"allowance"`
	Taken     int    `json:"taken"`
	Remaining int    `json:"remaining"`
}

// CalculateBalances subtracts approved leave days taken in year from the allowance.
// Only the part of a leave that falls inside the year counts, and remaining never goes below zero.
func CalculateBalances(leaves []Leave, year int) []Balance {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	taken := make(map[string]int)
	for _, l := range leaves {
		if l.Status != StatusApproved || !l.Overlaps(yearStart, yearEnd) {
			continue
		}
		start, end := utils.DateOf(l.StartDate), utils.DateOf(l.EndDate)
		if start.Before(yearStart) {
			start = yearStart
		}
		if end.After(yearEnd) {
			end = yearEnd
		}
		taken[l.LeaveType] += utils.DaysInclusive(start, end)
	}

	types := make([]string, 0, len(YearlyAllowance))
	for t := range YearlyAllowance {
		types = append(types, t)
	}
	sort.Strings(types)

	balances := make([]Balance, 0, len(types))
	for _, t := range types {
		allowance := YearlyAllowance[t]
		remaining := allowance - taken[t]
		if remaining < 0 {
			remaining = 0
		}
		balances = append(balances, Balance{
			LeaveType: t,
			Allowance: allowance,
			Taken:     taken[t],
			Remaining: remaining,
		})
	}
	return balances
}
