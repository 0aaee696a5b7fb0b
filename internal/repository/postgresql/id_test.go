package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The repositories below are built without a pool: a malformed id must be
// answered before any query is sent.
func TestMalformedIDsReadAsNotFound(t *testing.T) {
	ctx := context.Background()
	const bad = "abc"

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"employee get", func() error { _, err := NewEmployeeRepository(nil).GetByID(ctx, bad); return err }, employee.ErrEmployeeNotFound},
		{"employee update", func() error {
			_, err := NewEmployeeRepository(nil).Update(ctx, employee.Employee{ID: bad})
			return err
		}, employee.ErrEmployeeNotFound},
		{"employee delete", func() error { return NewEmployeeRepository(nil).Delete(ctx, bad) }, employee.ErrEmployeeNotFound},
		{"department get", func() error { _, err := NewDepartmentRepository(nil).GetByID(ctx, bad); return err }, department.ErrDepartmentNotFound},
		{"designation delete", func() error { return NewDesignationRepository(nil).Delete(ctx, bad) }, designation.ErrDesignationNotFound},
		{"schedule get", func() error { _, err := NewScheduleRepository(nil).GetByID(ctx, bad); return err }, schedule.ErrScheduleNotFound},
		{"holiday update", func() error {
			_, err := NewHolidayRepository(nil).Update(ctx, calendar.Holiday{ID: bad})
			return err
		}, calendar.ErrHolidayNotFound},
		{"leave status", func() error {
			_, err := NewLeaveRepository(nil).UpdateStatus(ctx, bad, leave.StatusApproved, nil, time.Now())
			return err
		}, leave.ErrLeaveNotFound},
		{"attendance get", func() error { _, err := NewAttendanceRepository(nil).GetByID(ctx, bad); return err }, attendance.ErrAttendanceNotFound},
		{"salary get", func() error { _, err := NewSalaryRepository(nil).GetByEmployeeID(ctx, bad); return err }, payroll.ErrSalaryNotFound},
		{"payroll paid", func() error { _, err := NewPayrollRepository(nil).MarkPaid(ctx, bad); return err }, payroll.ErrPayrollNotFound},
		{"user by employee", func() error { _, err := NewUserRepository(nil).GetByEmployeeID(ctx, bad); return err }, user.ErrUserNotFound},
		{"user status", func() error { return NewUserRepository(nil).UpdateStatus(ctx, bad, user.StatusInactive) }, user.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}
}

func TestMalformedIDsInLookups(t *testing.T) {
	ctx := context.Background()
	bad := "EMP-001"

	row, err := NewAttendanceRepository(nil).GetByEmployeeAndDate(ctx, bad, time.Now())
	require.NoError(t, err)
	assert.Nil(t, row)

	covering, err := NewLeaveRepository(nil).FindApprovedCovering(ctx, bad, time.Now())
	require.NoError(t, err)
	assert.Nil(t, covering)

	leaves, err := NewLeaveRepository(nil).List(ctx, leave.LeaveFilter{EmployeeID: &bad})
	require.NoError(t, err)
	assert.Empty(t, leaves)

	payrolls, err := NewPayrollRepository(nil).List(ctx, payroll.PayrollFilter{EmployeeID: &bad})
	require.NoError(t, err)
	assert.Empty(t, payrolls)

	employees, err := NewEmployeeRepository(nil).ListWithScheduleByIDs(ctx, []string{bad, ""})
	require.NoError(t, err)
	assert.Empty(t, employees)
}
