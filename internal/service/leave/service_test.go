package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryLeaves struct {
	leave.LeaveRepository
	rows map[string]leave.Leave
	seq  int
}

func (m *memoryLeaves) Create(_ context.Context, l leave.Leave) (leave.Leave, error) {
	m.seq++
	l.ID = fmt.Sprintf("leave-%d", m.seq)
	m.rows[l.ID] = l
	return l, nil
}

func (m *memoryLeaves) GetByID(_ context.Context, id string) (leave.Leave, error) {
	l, ok := m.rows[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

func (m *memoryLeaves) Update(_ context.Context, l leave.Leave) (leave.Leave, error) {
	m.rows[l.ID] = l
	return l, nil
}

func (m *memoryLeaves) UpdateStatus(_ context.Context, id string, status leave.Status, processedBy *string, processedAt time.Time) (leave.Leave, error) {
	l, ok := m.rows[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	if !l.IsPending() {
		return leave.Leave{}, leave.ErrLeaveAlreadyProcessed
	}
	l.Status = status
	l.ProcessedBy = processedBy
	l.ProcessedAt = &processedAt
	m.rows[id] = l
	return l, nil
}

func (m *memoryLeaves) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memoryLeaves) List(_ context.Context, filter leave.LeaveFilter) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range m.rows {
		if filter.EmployeeID != nil && l.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *memoryLeaves) HasOverlap(_ context.Context, employeeID string, start, end time.Time, excludeID *string) (bool, error) {
	for _, l := range m.rows {
		if l.EmployeeID != employeeID || l.Status == leave.StatusRejected {
			continue
		}
		if excludeID != nil && l.ID == *excludeID {
			continue
		}
		if l.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryLeaves) ListApprovedBetween(_ context.Context, employeeID string, start, end time.Time) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range m.rows {
		if l.EmployeeID == employeeID && l.Status == leave.StatusApproved && l.Overlaps(start, end) {
			out = append(out, l)
		}
	}
	return out, nil
}

type memoryEmployees struct {
	employee.EmployeeRepository
	ids map[string]bool
}

func (m *memoryEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if !m.ids[id] {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id}, nil
}

func newTestService() (*leaveServiceImpl, *memoryLeaves) {
	leaves := &memoryLeaves{rows: map[string]leave.Leave{}}
	employees := &memoryEmployees{ids: map[string]bool{"emp-1": true, "emp-2": true}}
	svc := NewLeaveService(leaves, employees).(*leaveServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC) }
	return svc, leaves
}

func hrContext() context.Context {
	return user.WithActor(context.Background(), user.Actor{UserID: "user-hr", Role: user.RoleHR})
}

func employeeContext(employeeID string) context.Context {
	return user.WithActor(context.Background(), user.Actor{UserID: "user-" + employeeID, EmployeeID: &employeeID, Role: user.RoleEmployee})
}

func request(employeeID, start, end string) leave.LeaveRequest {
	return leave.LeaveRequest{EmployeeID: employeeID, LeaveType: "annual", StartDate: start, EndDate: end}
}

func TestCreateLeave(t *testing.T) {
	t.Run("creates pending leave", func(t *testing.T) {
		svc, _ := newTestService()

		resp, err := svc.CreateLeave(hrContext(), request("emp-1", "2024-03-11", "2024-03-13"))
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, 3, resp.Days)
	})

	t.Run("rejects start after end", func(t *testing.T) {
		svc, leaves := newTestService()

		_, err := svc.CreateLeave(hrContext(), request("emp-1", "2024-03-13", "2024-03-11"))
		assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
		assert.Empty(t, leaves.rows)
	})

	t.Run("rejects overlapping leave", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.CreateLeave(hrContext(), request("emp-1", "2024-03-11", "2024-03-13"))
		require.NoError(t, err)

		_, err = svc.CreateLeave(hrContext(), request("emp-1", "2024-03-13", "2024-03-15"))
		assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	})

	t.Run("rejected leave does not block", func(t *testing.T) {
		svc, _ := newTestService()

		first, err := svc.CreateLeave(hrContext(), request("emp-1", "2024-03-11", "2024-03-13"))
		require.NoError(t, err)
		_, err = svc.ProcessLeave(hrContext(), leave.ProcessLeaveRequest{ID: first.ID, Action: "reject"})
		require.NoError(t, err)

		_, err = svc.CreateLeave(hrContext(), request("emp-1", "2024-03-12", "2024-03-12"))
		assert.NoError(t, err)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.CreateLeave(hrContext(), request("emp-9", "2024-03-11", "2024-03-11"))
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("employee files for themselves", func(t *testing.T) {
		svc, _ := newTestService()

		resp, err := svc.CreateLeave(employeeContext("emp-2"), request("emp-1", "2024-03-11", "2024-03-11"))
		require.NoError(t, err)
		assert.Equal(t, "emp-2", resp.EmployeeID)
	})
}

func TestProcessLeave(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.CreateLeave(hrContext(), request("emp-1", "2024-03-11", "2024-03-12"))
	require.NoError(t, err)

	_, err = svc.ProcessLeave(employeeContext("emp-1"), leave.ProcessLeaveRequest{ID: created.ID, Action: "approve"})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	_, err = svc.ProcessLeave(hrContext(), leave.ProcessLeaveRequest{ID: created.ID, Action: "cancel"})
	assert.ErrorIs(t, err, leave.ErrInvalidAction)

	approved, err := svc.ProcessLeave(hrContext(), leave.ProcessLeaveRequest{ID: created.ID, Action: "approve"})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ProcessedBy)
	assert.Equal(t, "user-hr", *approved.ProcessedBy)

	_, err = svc.ProcessLeave(hrContext(), leave.ProcessLeaveRequest{ID: created.ID, Action: "reject"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestUpdateAndDeleteLeave(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.CreateLeave(hrContext(), request("emp-1", "2024-03-11", "2024-03-12"))
	require.NoError(t, err)

	t.Run("update may overlap itself", func(t *testing.T) {
		req := request("", "2024-03-12", "2024-03-14")
		req.ID = created.ID
		resp, err := svc.UpdateLeave(hrContext(), req)
		require.NoError(t, err)
		assert.Equal(t, "emp-1", resp.EmployeeID)
		assert.Equal(t, "2024-03-14", resp.EndDate)
	})

	t.Run("other employee cannot touch it", func(t *testing.T) {
		err := svc.DeleteLeave(employeeContext("emp-2"), created.ID)
		assert.ErrorIs(t, err, leave.ErrNotLeaveOwner)

		_, err = svc.GetLeave(employeeContext("emp-2"), created.ID)
		assert.ErrorIs(t, err, leave.ErrNotLeaveOwner)
	})

	t.Run("processed leave is frozen", func(t *testing.T) {
		_, err := svc.ProcessLeave(hrContext(), leave.ProcessLeaveRequest{ID: created.ID, Action: "approve"})
		require.NoError(t, err)

		req := request("", "2024-03-20", "2024-03-21")
		req.ID = created.ID
		_, err = svc.UpdateLeave(hrContext(), req)
		assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

		err = svc.DeleteLeave(employeeContext("emp-1"), created.ID)
		assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
	})
}

func TestListLeavesRestrictsEmployees(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateLeave(hrContext(), request("emp-1", "2024-03-11", "2024-03-11"))
	require.NoError(t, err)
	_, err = svc.CreateLeave(hrContext(), request("emp-2", "2024-03-11", "2024-03-11"))
	require.NoError(t, err)

	all, err := svc.ListLeaves(hrContext(), leave.LeaveFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	other := "emp-2"
	own, err := svc.ListLeaves(employeeContext("emp-1"), leave.LeaveFilter{EmployeeID: &other})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "emp-1", own[0].EmployeeID)
}

func TestLeaveReportRejectsInvertedRange(t *testing.T) {
	svc, _ := newTestService()
	from := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.LeaveReport(hrContext(), leave.LeaveFilter{From: &from, To: &to})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestLeaveBalance(t *testing.T) {
	svc, leaves := newTestService()
	leaves.rows["a"] = leave.Leave{
		ID:         "a",
		EmployeeID: "emp-1",
		LeaveType:  "annual",
		StartDate:  time.Date(2023, time.December, 30, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		Status:     leave.StatusApproved,
	}
	leaves.rows["b"] = leave.Leave{
		ID:         "b",
		EmployeeID: "emp-1",
		LeaveType:  "sick",
		StartDate:  time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC),
		Status:     leave.StatusPending,
	}

	resp, err := svc.LeaveBalance(employeeContext("emp-1"), "emp-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, resp.Year)

	byType := map[string]leave.Balance{}
	for _, b := range resp.Balances {
		byType[b.LeaveType] = b
	}
	assert.Equal(t, 2, byType["annual"].Taken)
	assert.Equal(t, 18, byType["annual"].Remaining)
	assert.Equal(t, 0, byType["sick"].Taken)

	_, err = svc.LeaveBalance(employeeContext("emp-2"), "emp-1", 2024)
	assert.ErrorIs(t, err, leave.ErrNotLeaveOwner)
}
