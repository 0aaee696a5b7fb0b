package leave

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestLeave_Covers(t *testing.T) {
	l := Leave{StartDate: d(2024, 3, 4), EndDate: d(2024, 3, 6)}
	assert.False(t, l.Covers(d(2024, 3, 3)))
	assert.True(t, l.Covers(d(2024, 3, 4)))
	assert.True(t, l.Covers(d(2024, 3, 6).Add(15*time.Hour)))
	assert.False(t, l.Covers(d(2024, 3, 7)))
	assert.Equal(t, 3, l.Days())
}

func TestLeave_Overlaps(t *testing.T) {
	l := Leave{StartDate: d(2024, 3, 4), EndDate: d(2024, 3, 6)}
	assert.True(t, l.Overlaps(d(2024, 3, 6), d(2024, 3, 10)))
	assert.True(t, l.Overlaps(d(2024, 3, 1), d(2024, 3, 4)))
	assert.False(t, l.Overlaps(d(2024, 3, 7), d(2024, 3, 8)))
}

func TestLeave_Description(t *testing.T) {
	l := Leave{LeaveType: "sick"}
	assert.Equal(t, "sick leave", l.Description())
}

func TestLeaveRequest_Validate_StartAfterEnd(t *testing.T) {
	req := LeaveRequest{EmployeeID: "e1", LeaveType: "annual", StartDate: "2024-03-10", EndDate: "2024-03-01"}
	assert.ErrorIs(t, req.Validate(), ErrInvalidDateRange)
}

func TestLeaveRequest_Validate_BadDates(t *testing.T) {
	req := LeaveRequest{EmployeeID: "e1", LeaveType: "annual", StartDate: "10/03/2024", EndDate: ""}
	err := req.Validate()

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs.ToMap(), "start_date")
	assert.Contains(t, errs.ToMap(), "end_date")
}

func TestLeaveRequest_Validate_SingleDay(t *testing.T) {
	req := LeaveRequest{EmployeeID: "e1", LeaveType: "casual", StartDate: "2024-03-01", EndDate: "2024-03-01"}
	require.NoError(t, req.Validate())
	start, end := req.Range()
	assert.Equal(t, d(2024, 3, 1), start)
	assert.Equal(t, start, end)
}

func TestProcessLeaveRequest_Validate(t *testing.T) {
	req := ProcessLeaveRequest{ID: "l1", Action: "approve"}
	require.NoError(t, req.Validate())
	assert.Equal(t, StatusApproved, req.TargetStatus())

	req.Action = "reject"
	assert.Equal(t, StatusRejected, req.TargetStatus())

	req.Action = "cancel"
	assert.ErrorIs(t, req.Validate(), ErrInvalidAction)
}

func TestCalculateBalances(t *testing.T) {
	leaves := []Leave{
		{LeaveType: "annual", Status: StatusApproved, StartDate: d(2024, 2, 5), EndDate: d(2024, 2, 9)},
		{LeaveType: "annual", Status: StatusPending, StartDate: d(2024, 4, 1), EndDate: d(2024, 4, 5)},
		{LeaveType: "sick", Status: StatusApproved, StartDate: d(2023, 12, 30), EndDate: d(2024, 1, 2)},
		{LeaveType: "casual", Status: StatusApproved, StartDate: d(2024, 5, 1), EndDate: d(2024, 5, 10)},
	}

	balances := CalculateBalances(leaves, 2024)
	require.Len(t, balances, 3)

	byType := map[string]Balance{}
	for _, b := range balances {
		byType[b.LeaveType] = b
	}

	assert.Equal(t, Balance{LeaveType: "annual", Allowance: 20, Taken: 5, Remaining: 15}, byType["annual"])
	// Only the 2024 part of the year-crossing sick leave counts.
	assert.Equal(t, Balance{LeaveType: "sick", Allowance: 10, Taken: 2, Remaining: 8}, byType["sick"])
	// Remaining is clamped at zero.
	assert.Equal(t, Balance{LeaveType: "casual", Allowance: 7, Taken: 10, Remaining: 0}, byType["casual"])
}
