package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/timeofday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type memoryAttendance struct {
	rows map[string]attendance.Attendance
	seq  int
}

func (m *memoryAttendance) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	m.seq++
	a.ID = fmt.Sprintf("att-%03d", m.seq)
	m.rows[a.ID] = a
	return a, nil
}

func (m *memoryAttendance) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	a, ok := m.rows[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (m *memoryAttendance) GetByEmployeeAndDate(_ context.Context, employeeID string, d time.Time) (*attendance.Attendance, error) {
	for _, a := range m.sorted() {
		if a.EmployeeID == employeeID && a.Date.Equal(d) {
			return &a, nil
		}
	}
	return nil, nil
}

func (m *memoryAttendance) sorted() []attendance.Attendance {
	out := make([]attendance.Attendance, 0, len(m.rows))
	for _, a := range m.rows {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryAttendance) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range m.sorted() {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.From != nil && a.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.Date.After(*filter.To) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memoryAttendance) ExistingDates(_ context.Context, employeeID string, start, end time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, a := range m.rows {
		if a.EmployeeID == employeeID && !a.Date.Before(start) && !a.Date.After(end) {
			out = append(out, a.Date)
		}
	}
	return out, nil
}

func (m *memoryAttendance) Update(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if _, ok := m.rows[a.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	m.rows[a.ID] = a
	return a, nil
}

func (m *memoryAttendance) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryAttendance) statusOn(employeeID string, d time.Time) attendance.Status {
	for _, a := range m.rows {
		if a.EmployeeID == employeeID && a.Date.Equal(d) {
			return a.Status
		}
	}
	return ""
}

type memoryEmployees struct {
	employee.EmployeeRepository
	active   []employee.WithSchedule
	inactive []employee.WithSchedule
}

func (m *memoryEmployees) ListWithScheduleByIDs(_ context.Context, ids []string) ([]employee.WithSchedule, error) {
	var out []employee.WithSchedule
	for _, e := range append(append([]employee.WithSchedule{}, m.active...), m.inactive...) {
		for _, id := range ids {
			if e.ID == id {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (m *memoryEmployees) ListActiveWithSchedule(context.Context) ([]employee.WithSchedule, error) {
	return m.active, nil
}

func (m *memoryEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range m.active {
		if e.ID == id {
			return e.Employee, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeCalendar struct {
	calendar.CalendarService
	holidays map[time.Time]calendar.Holiday
	broken   map[time.Time]bool
	lookups  int
}

func (f *fakeCalendar) WorkWeek(context.Context) (calendar.WorkWeek, error) {
	return calendar.DefaultWorkWeek(), nil
}

func (f *fakeCalendar) HolidayOn(_ context.Context, d time.Time) (*calendar.Holiday, error) {
	f.lookups++
	if f.broken[d] {
		return nil, errors.New("connection reset")
	}
	if h, ok := f.holidays[d]; ok {
		return &h, nil
	}
	return nil, nil
}

type fakeLeaves struct {
	approved []leave.Leave
}

func (f *fakeLeaves) FindApprovedCovering(_ context.Context, employeeID string, d time.Time) (*leave.Leave, error) {
	for _, l := range f.approved {
		if l.EmployeeID == employeeID && l.Covers(d) {
			return &l, nil
		}
	}
	return nil, nil
}

type fixture struct {
	svc       *AttendanceServiceImpl
	rows      *memoryAttendance
	employees *memoryEmployees
	calendar  *fakeCalendar
	leaves    *fakeLeaves
}

func shift(in, out string) (*timeofday.TimeOfDay, *timeofday.TimeOfDay) {
	return timeofday.ParseOptional(in), timeofday.ParseOptional(out)
}

func newFixture(now time.Time) fixture {
	in, out := shift("09:00", "17:00")
	employees := &memoryEmployees{active: []employee.WithSchedule{
		{Employee: employee.Employee{ID: "emp-1", FirstName: "Ann", LastName: "Lee", Status: employee.StatusActive}, ScheduleTimeIn: in, ScheduleTimeOut: out},
		{Employee: employee.Employee{ID: "emp-2", FirstName: "Bob", LastName: "Ray", Status: employee.StatusActive}},
	}}
	f := fixture{
		rows:      &memoryAttendance{rows: map[string]attendance.Attendance{}},
		employees: employees,
		calendar:  &fakeCalendar{holidays: map[time.Time]calendar.Holiday{}, broken: map[time.Time]bool{}},
		leaves:    &fakeLeaves{},
	}
	f.svc = NewAttendanceService(f.rows, employees, f.calendar, f.leaves, time.UTC).(*AttendanceServiceImpl)
	f.svc.now = func() time.Time { return now }
	return f
}

func TestGenerateForRange_ResolvesEachDay(t *testing.T) {
	// Monday 2024-03-04 through Sunday 2024-03-10.
	f := newFixture(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	f.calendar.holidays[date(2024, 3, 6)] = calendar.Holiday{Name: "Founders Day", Date: date(2024, 3, 6)}
	f.leaves.approved = []leave.Leave{{
		EmployeeID: "emp-1",
		LeaveType:  "sick",
		StartDate:  date(2024, 3, 6),
		EndDate:    date(2024, 3, 7),
		Status:     leave.StatusApproved,
	}}
	f.rows.rows["pre"] = attendance.Attendance{ID: "pre", EmployeeID: "emp-1", Date: date(2024, 3, 5), Status: attendance.StatusPresent}

	result, err := f.svc.GenerateForRange(context.Background(), attendance.GenerateRequest{
		EmployeeID: "emp-1",
		StartDate:  "2024-03-04",
		EndDate:    "2024-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Employees)
	assert.Equal(t, 6, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, result.Failed)

	assert.Equal(t, attendance.StatusAbsent, f.rows.statusOn("emp-1", date(2024, 3, 4)))
	assert.Equal(t, attendance.StatusPresent, f.rows.statusOn("emp-1", date(2024, 3, 5)))
	assert.Equal(t, attendance.StatusHoliday, f.rows.statusOn("emp-1", date(2024, 3, 6)), "holiday wins over leave")
	assert.Equal(t, attendance.StatusLeave, f.rows.statusOn("emp-1", date(2024, 3, 7)))
	assert.Equal(t, attendance.StatusAbsent, f.rows.statusOn("emp-1", date(2024, 3, 8)))
	assert.Equal(t, attendance.StatusWeekend, f.rows.statusOn("emp-1", date(2024, 3, 9)))
	assert.Equal(t, attendance.StatusWeekend, f.rows.statusOn("emp-1", date(2024, 3, 10)))

	leaveRow, err := f.rows.GetByEmployeeAndDate(context.Background(), "emp-1", date(2024, 3, 7))
	require.NoError(t, err)
	require.NotNil(t, leaveRow.Description)
	assert.Equal(t, "sick leave", *leaveRow.Description)
}

func TestGenerateForRange_FailingDayDoesNotAbort(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC))
	f.calendar.broken[date(2024, 3, 5)] = true

	result, err := f.svc.GenerateForRange(context.Background(), attendance.GenerateRequest{StartDate: "2024-03-04", EndDate: "2024-03-06"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Employees)
	assert.Equal(t, 4, result.Created)
	assert.Equal(t, 2, result.Failed)
	assert.Empty(t, f.rows.statusOn("emp-1", date(2024, 3, 5)))
}

func TestGenerateForRange_RejectsInvertedRange(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC))

	_, err := f.svc.GenerateForRange(context.Background(), attendance.GenerateRequest{StartDate: "2024-03-06", EndDate: "2024-03-04"})
	assert.Error(t, err)
	assert.Empty(t, f.rows.rows)
}

func TestRecomputeForDate_IsIdempotent(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := f.svc.RecomputeForDate(ctx, date(2024, 3, 8))
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)

	second, err := f.svc.RecomputeForDate(ctx, date(2024, 3, 8))
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, f.rows.rows, 2)
}

func TestListByDate_FallsBackToToday(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC))

	resp, err := f.svc.ListByDate(context.Background(), "08/03/2024")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-08", resp.Date)
	assert.Equal(t, 2, resp.Generation.Created)
	assert.Len(t, resp.Attendances, 2)
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("check out without check in", func(t *testing.T) {
		f := newFixture(time.Date(2024, 3, 8, 9, 5, 0, 0, time.UTC))
		_, err := f.svc.Check(ctx, attendance.CheckRequest{EmployeeID: "emp-1", Action: "out"})
		assert.ErrorIs(t, err, attendance.ErrNoCheckIn)
	})

	t.Run("invalid action", func(t *testing.T) {
		f := newFixture(time.Date(2024, 3, 8, 9, 5, 0, 0, time.UTC))
		_, err := f.svc.Check(ctx, attendance.CheckRequest{EmployeeID: "emp-1", Action: "lunch"})
		assert.ErrorIs(t, err, attendance.ErrInvalidAction)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newFixture(time.Date(2024, 3, 8, 9, 5, 0, 0, time.UTC))
		_, err := f.svc.Check(ctx, attendance.CheckRequest{EmployeeID: "ghost", Action: "in"})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("check in then out", func(t *testing.T) {
		f := newFixture(time.Date(2024, 3, 8, 9, 5, 0, 0, time.UTC))

		in, err := f.svc.Check(ctx, attendance.CheckRequest{EmployeeID: "emp-1", Action: "in"})
		require.NoError(t, err)
		assert.Equal(t, "present", in.Status)
		assert.Equal(t, "09:05", in.TimeIn.String())

		f.svc.now = func() time.Time { return time.Date(2024, 3, 8, 17, 30, 0, 0, time.UTC) }
		out, err := f.svc.Check(ctx, attendance.CheckRequest{EmployeeID: "emp-1", Action: "out"})
		require.NoError(t, err)
		assert.Equal(t, in.ID, out.ID)
		assert.Equal(t, "09:05", out.TimeIn.String())
		assert.Equal(t, "17:30", out.TimeOut.String())
		assert.Len(t, f.rows.rows, 1)
	})

	t.Run("check in turns absent into present", func(t *testing.T) {
		f := newFixture(time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC))
		_, err := f.svc.RecomputeForDate(ctx, date(2024, 3, 8))
		require.NoError(t, err)
		require.Equal(t, attendance.StatusAbsent, f.rows.statusOn("emp-1", date(2024, 3, 8)))

		resp, err := f.svc.Check(ctx, attendance.CheckRequest{EmployeeID: "emp-1", Action: "in"})
		require.NoError(t, err)
		assert.Equal(t, "present", resp.Status)
		assert.Equal(t, "10:00", resp.TimeIn.String())
	})
}

func TestManualAttendance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC))

	created, err := f.svc.CreateManual(ctx, attendance.ManualAttendanceRequest{
		EmployeeID: "emp-2",
		Date:       "not-a-date",
		TimeIn:     "08:30",
		TimeOut:    "25:99",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-08", created.Date)
	assert.Equal(t, "present", created.Status)
	require.NotNil(t, created.TimeIn)
	assert.Nil(t, created.TimeOut)

	updated, err := f.svc.UpdateAttendance(ctx, attendance.ManualAttendanceRequest{
		ID:      created.ID,
		Date:    "2024/03/01",
		TimeIn:  "bogus",
		TimeOut: "17:00",
		Status:  "leave",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-08", updated.Date)
	assert.Nil(t, updated.TimeIn)
	assert.Equal(t, "17:00", updated.TimeOut.String())
	assert.Equal(t, "leave", updated.Status)

	_, err = f.svc.CreateManual(ctx, attendance.ManualAttendanceRequest{EmployeeID: "emp-2", Status: "late"})
	assert.Error(t, err)

	require.NoError(t, f.svc.DeleteAttendance(ctx, created.ID))
	_, err = f.svc.GetAttendance(ctx, created.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func seedMonth(f fixture) {
	in, out := shift("09:30", "16:00")
	f.rows.rows["a1"] = attendance.Attendance{ID: "a1", EmployeeID: "emp-1", EmployeeName: "Ann Lee", Date: date(2024, 3, 4), TimeIn: in, TimeOut: out, Status: attendance.StatusPresent}
	in, out = shift("09:00", "17:00")
	f.rows.rows["a2"] = attendance.Attendance{ID: "a2", EmployeeID: "emp-1", EmployeeName: "Ann Lee", Date: date(2024, 3, 5), TimeIn: in, TimeOut: out, Status: attendance.StatusPresent}
	f.rows.rows["a3"] = attendance.Attendance{ID: "a3", EmployeeID: "emp-1", EmployeeName: "Ann Lee", Date: date(2024, 3, 6), Status: attendance.StatusHoliday}
	f.rows.rows["a4"] = attendance.Attendance{ID: "a4", EmployeeID: "emp-1", EmployeeName: "Ann Lee", Date: date(2024, 4, 1), Status: attendance.StatusPresent}
}

func TestMonthlyReport(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC))
	seedMonth(f)

	_, err := f.svc.MonthlyReport(context.Background(), attendance.MonthlyReportRequest{Year: 2024, Month: 13})
	assert.Error(t, err)

	report, err := f.svc.MonthlyReport(context.Background(), attendance.MonthlyReportRequest{Year: 2024, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, "March", report.MonthName)
	assert.Equal(t, "2024-03-31", report.EndDate)
	assert.Len(t, report.Rows, 3)
	require.Len(t, report.Stats, 2)

	ann := report.Stats[0]
	assert.Equal(t, "Ann Lee", ann.EmployeeName)
	assert.Equal(t, 2, ann.Present)
	assert.Equal(t, 1, ann.Absent)
	assert.Equal(t, 1, ann.Late)
	assert.Equal(t, 1, ann.EarlyOut)
	assert.Equal(t, 14.5, ann.WorkingHours)
	assert.Equal(t, 66.67, ann.AttendancePercentage)

	bob := report.Stats[1]
	assert.Zero(t, bob.Present)
	assert.Zero(t, bob.AttendancePercentage)
}

func TestMonthlyReport_SingleEmployee(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC))
	seedMonth(f)

	id := "emp-2"
	report, err := f.svc.MonthlyReport(context.Background(), attendance.MonthlyReportRequest{Year: 2024, Month: 3, EmployeeID: &id})
	require.NoError(t, err)
	require.Len(t, report.Stats, 1)
	assert.Equal(t, "emp-2", report.Stats[0].EmployeeID)
	assert.Empty(t, report.Rows)

	missing := "ghost"
	_, err = f.svc.MonthlyReport(context.Background(), attendance.MonthlyReportRequest{Year: 2024, Month: 3, EmployeeID: &missing})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestMonthlyReport_InactiveEmployeeKeepsShift(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC))
	in, out := shift("09:00", "17:00")
	f.employees.inactive = []employee.WithSchedule{
		{Employee: employee.Employee{ID: "emp-3", FirstName: "Cal", LastName: "Orr", Status: employee.StatusInactive}, ScheduleTimeIn: in, ScheduleTimeOut: out},
	}
	in, out = shift("10:00", "12:00")
	f.rows.rows["c1"] = attendance.Attendance{ID: "c1", EmployeeID: "emp-3", EmployeeName: "Cal Orr", Date: date(2024, 3, 4), TimeIn: in, TimeOut: out, Status: attendance.StatusPresent}

	id := "emp-3"
	report, err := f.svc.MonthlyReport(context.Background(), attendance.MonthlyReportRequest{Year: 2024, Month: 3, EmployeeID: &id})
	require.NoError(t, err)
	require.Len(t, report.Stats, 1)
	assert.Equal(t, 1, report.Stats[0].Present)
	assert.Equal(t, 1, report.Stats[0].Late)
	assert.Equal(t, 1, report.Stats[0].EarlyOut)

	report, err = f.svc.MonthlyReport(context.Background(), attendance.MonthlyReportRequest{Year: 2024, Month: 3})
	require.NoError(t, err)
	require.Len(t, report.Stats, 3)
	cal := report.Stats[2]
	assert.Equal(t, "emp-3", cal.EmployeeID)
	assert.Equal(t, 1, cal.Late)
	assert.Equal(t, 1, cal.EarlyOut)
}

func TestExportMonthlyReport(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC))
	seedMonth(f)

	export, err := f.svc.ExportMonthlyReport(context.Background(), attendance.MonthlyReportRequest{Year: 2024, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, "attendance-2024-03.xlsx", export.Filename)
	assert.Equal(t, xlsxContentType, export.ContentType)

	book, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{summarySheet, detailSheet}, book.GetSheetList())

	name, err := book.GetCellValue(summarySheet, "A5")
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", name)

	status, err := book.GetCellValue(detailSheet, "C4")
	require.NoError(t, err)
	assert.Equal(t, "holiday", status)
}

func TestRangeReport(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC))
	seedMonth(f)

	rows, err := f.svc.RangeReport(context.Background(), attendance.RangeReportRequest{StartDate: "2024-03-05", EndDate: "2024-03-06"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = f.svc.RangeReport(context.Background(), attendance.RangeReportRequest{StartDate: "2024-03-05"})
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestBoard(t *testing.T) {
	f := newFixture(time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC))
	_, err := f.svc.Check(context.Background(), attendance.CheckRequest{EmployeeID: "emp-2", Action: "in"})
	require.NoError(t, err)

	board, err := f.svc.Board(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-08", board.Date)
	require.Len(t, board.Entries, 2)
	assert.Nil(t, board.Entries[0].Attendance)
	require.NotNil(t, board.Entries[1].Attendance)
	assert.Equal(t, "present", board.Entries[1].Attendance.Status)
}
