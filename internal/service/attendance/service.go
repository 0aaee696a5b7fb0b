package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
)

// LeaveLookup is the part of the leave service the resolver depends on.
type LeaveLookup interface {
	FindApprovedCovering(ctx context.Context, employeeID string, date time.Time) (*leave.Leave, error)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employeeRepo employee.EmployeeRepository
	calendar     calendar.CalendarService
	leaves       LeaveLookup
	loc          *time.Location
	now          func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	calendarService calendar.CalendarService,
	leaves LeaveLookup,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		employeeRepo:         employeeRepo,
		calendar:             calendarService,
		leaves:               leaves,
		loc:                  loc,
		now:                  time.Now,
	}
}

func (s *AttendanceServiceImpl) today() time.Time {
	return utils.Today(s.now(), s.loc)
}

func (s *AttendanceServiceImpl) clock() timeofday.TimeOfDay {
	return timeofday.Of(s.now().In(s.loc))
}

// holidayCache memoizes holiday lookups for the dates of one generation pass.
type holidayCache struct {
	calendar calendar.CalendarService
	days     map[time.Time]*calendar.Holiday
}

func (c *holidayCache) on(ctx context.Context, date time.Time) (*calendar.Holiday, error) {
	if h, ok := c.days[date]; ok {
		return h, nil
	}
	h, err := c.calendar.HolidayOn(ctx, date)
	if err != nil {
		return nil, err
	}
	c.days[date] = h
	return h, nil
}

// resolveDay stores the resolved row for one employee and day. created is false
// when the day already had a row.
func (s *AttendanceServiceImpl) resolveDay(ctx context.Context, employeeID string, date time.Time, existing bool, week calendar.WorkWeek, holidays *holidayCache) (bool, error) {
	facts := attendance.DayFacts{WorkWeek: week}
	if existing {
		facts.Existing = &attendance.Attendance{EmployeeID: employeeID, Date: date}
	} else {
		holiday, err := holidays.on(ctx, date)
		if err != nil {
			return false, fmt.Errorf("failed to look up holiday: %w", err)
		}
		facts.Holiday = holiday

		if holiday == nil && week.IsWorkingDay(date) {
			covering, err := s.leaves.FindApprovedCovering(ctx, employeeID, date)
			if err != nil {
				return false, fmt.Errorf("failed to look up approved leave: %w", err)
			}
			facts.ApprovedLeave = covering
		}
	}

	resolution := attendance.Resolve(date, facts)
	if resolution.Skip {
		return false, nil
	}
	if _, err := s.AttendanceRepository.Create(ctx, resolution.Row(employeeID, date)); err != nil {
		return false, err
	}
	return true, nil
}

// generate resolves [start, end] for each employee. Failures are logged and
// counted per day so one bad day never stops the batch.
func (s *AttendanceServiceImpl) generate(ctx context.Context, employeeIDs []string, start, end time.Time) (attendance.GenerateResult, error) {
	result := attendance.GenerateResult{
		StartDate: start.Format(utils.DateLayout),
		EndDate:   end.Format(utils.DateLayout),
		Employees: len(employeeIDs),
	}

	week, err := s.calendar.WorkWeek(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load work week: %w", err)
	}
	holidays := &holidayCache{calendar: s.calendar, days: make(map[time.Time]*calendar.Holiday)}

	for _, employeeID := range employeeIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		dates, err := s.ExistingDates(ctx, employeeID, start, end)
		if err != nil {
			slog.Error("Failed to load existing attendance dates", "employee_id", employeeID, "error", err)
			result.Failed += utils.DaysInclusive(start, end)
			continue
		}
		existing := make(map[time.Time]bool, len(dates))
		for _, d := range dates {
			existing[utils.DateOf(d)] = true
		}

		utils.EachDay(start, end, func(day time.Time) {
			created, err := s.resolveDay(ctx, employeeID, day, existing[day], week, holidays)
			switch {
			case err != nil:
				slog.Error("Failed to generate attendance", "employee_id", employeeID, "date", day.Format(utils.DateLayout), "error", err)
				result.Failed++
			case created:
				result.Created++
			default:
				result.Skipped++
			}
		})
	}
	return result, nil
}

func (s *AttendanceServiceImpl) activeEmployeeIDs(ctx context.Context) ([]string, error) {
	employees, err := s.employeeRepo.ListActiveWithSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

// GenerateForRange implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GenerateForRange(ctx context.Context, req attendance.GenerateRequest) (attendance.GenerateResult, error) {
	start, end, err := req.Range(s.today())
	if err != nil {
		return attendance.GenerateResult{}, err
	}

	var ids []string
	if req.EmployeeID != "" {
		if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return attendance.GenerateResult{}, err
		}
		ids = []string{req.EmployeeID}
	} else {
		ids, err = s.activeEmployeeIDs(ctx)
		if err != nil {
			return attendance.GenerateResult{}, err
		}
	}

	result, err := s.generate(ctx, ids, start, end)
	if err != nil {
		return result, err
	}
	slog.Info("Attendance generated",
		"start_date", result.StartDate,
		"end_date", result.EndDate,
		"employees", result.Employees,
		"created", result.Created,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return result, nil
}

// RecomputeForDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecomputeForDate(ctx context.Context, date time.Time) (attendance.GenerateResult, error) {
	ids, err := s.activeEmployeeIDs(ctx)
	if err != nil {
		return attendance.GenerateResult{}, err
	}
	day := utils.DateOf(date)
	return s.generate(ctx, ids, day, day)
}

// ListByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, date string) (attendance.DailyAttendanceResponse, error) {
	day := utils.ParseDateOr(date, s.today())

	generation, err := s.RecomputeForDate(ctx, day)
	if err != nil {
		return attendance.DailyAttendanceResponse{}, err
	}

	rows, err := s.AttendanceRepository.List(ctx, attendance.AttendanceFilter{From: &day, To: &day})
	if err != nil {
		return attendance.DailyAttendanceResponse{}, err
	}

	return attendance.DailyAttendanceResponse{
		Date:        day.Format(utils.DateLayout),
		Generation:  generation,
		Attendances: attendance.NewAttendanceResponses(rows),
	}, nil
}

// Board implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Board(ctx context.Context) (attendance.BoardResponse, error) {
	today := s.today()

	employees, err := s.employeeRepo.ListActiveWithSchedule(ctx)
	if err != nil {
		return attendance.BoardResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}
	rows, err := s.AttendanceRepository.List(ctx, attendance.AttendanceFilter{From: &today, To: &today})
	if err != nil {
		return attendance.BoardResponse{}, err
	}

	byEmployee := make(map[string]attendance.AttendanceResponse, len(rows))
	for _, row := range rows {
		if _, seen := byEmployee[row.EmployeeID]; !seen {
			byEmployee[row.EmployeeID] = attendance.NewAttendanceResponse(row)
		}
	}

	entries := make([]attendance.BoardEntry, 0, len(employees))
	for _, e := range employees {
		entry := attendance.BoardEntry{
			EmployeeID:   e.ID,
			EmployeeName: e.FullName(),
			UniqueID:     e.UniqueID,
		}
		if row, ok := byEmployee[e.ID]; ok {
			entry.Attendance = &row
		}
		entries = append(entries, entry)
	}

	return attendance.BoardResponse{Date: today.Format(utils.DateLayout), Entries: entries}, nil
}

// Check implements attendance.AttendanceService. Concurrent checks for the same
// employee are not serialized; the last write wins.
func (s *AttendanceServiceImpl) Check(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	today := s.today()
	now := s.clock()

	existing, err := s.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	switch attendance.CheckAction(req.Action) {
	case attendance.CheckIn:
		if existing == nil {
			created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
				EmployeeID: req.EmployeeID,
				Date:       today,
				TimeIn:     &now,
				Status:     attendance.StatusPresent,
			})
			if err != nil {
				return attendance.AttendanceResponse{}, err
			}
			slog.Info("Employee checked in", "employee_id", req.EmployeeID, "time_in", now.String())
			return attendance.NewAttendanceResponse(created), nil
		}
		existing.TimeIn = &now
		existing.Status = attendance.StatusPresent
	default:
		if existing == nil {
			return attendance.AttendanceResponse{}, attendance.ErrNoCheckIn
		}
		existing.TimeOut = &now
	}

	updated, err := s.AttendanceRepository.Update(ctx, *existing)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	slog.Info("Attendance checked", "employee_id", req.EmployeeID, "action", req.Action, "time", now.String())
	return attendance.NewAttendanceResponse(updated), nil
}

func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	a, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(a), nil
}

// CreateManual stores a hand-entered row; a missing status means present.
func (s *AttendanceServiceImpl) CreateManual(ctx context.Context, req attendance.ManualAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status := attendance.StatusPresent
	if req.Status != "" {
		status = attendance.Status(req.Status)
	}
	in, out := req.Times()

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID:  req.EmployeeID,
		Date:        req.ResolveDate(s.today()),
		TimeIn:      in,
		TimeOut:     out,
		Status:      status,
		Description: req.Description,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(created), nil
}

// UpdateAttendance keeps the stored date when the new one is malformed. Times
// are replaced as sent, so an unparsable time clears the field.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.ManualAttendanceRequest) (attendance.AttendanceResponse, error) {
	existing, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.EmployeeID != "" && req.EmployeeID != existing.EmployeeID {
		if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		existing.EmployeeID = req.EmployeeID
	}
	existing.Date = req.ResolveDate(existing.Date)
	existing.TimeIn, existing.TimeOut = req.Times()
	if req.Status != "" {
		existing.Status = attendance.Status(req.Status)
	}
	if req.Description != nil {
		existing.Description = req.Description
	}

	updated, err := s.AttendanceRepository.Update(ctx, existing)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(updated), nil
}

func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	return s.AttendanceRepository.Delete(ctx, id)
}

// RangeReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RangeReport(ctx context.Context, req attendance.RangeReportRequest) ([]attendance.AttendanceResponse, error) {
	from, to := req.Bounds()
	rows, err := s.AttendanceRepository.List(ctx, attendance.AttendanceFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return attendance.NewAttendanceResponses(rows), nil
}
