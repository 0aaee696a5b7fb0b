package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
)

const JobGenerateDailyAttendance = "generate_daily_attendance"

// AttendanceJobs fills in the day's attendance rows for every active employee.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, loc *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		loc:               loc,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	return scheduler.AddJob(JobGenerateDailyAttendance, spec, j.GenerateDailyAttendance)
}

func (j *AttendanceJobs) GenerateDailyAttendance(ctx context.Context) error {
	today := utils.Today(j.now(), j.loc)
	slog.Info("Cron: Generating attendance", "date", today.Format(utils.DateLayout))

	result, err := j.attendanceService.RecomputeForDate(ctx, today)
	if err != nil {
		return err
	}

	slog.Info("Cron: Attendance generated",
		"date", today.Format(utils.DateLayout),
		"employees", result.Employees,
		"created", result.Created,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return nil
}
