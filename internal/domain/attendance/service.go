package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	// GenerateForRange resolves every day in the range; a failing day is counted, never fatal.
	GenerateForRange(ctx context.Context, req GenerateRequest) (GenerateResult, error)
	// RecomputeForDate resolves date for every active employee. Existing rows are kept.
	RecomputeForDate(ctx context.Context, date time.Time) (GenerateResult, error)
	ListByDate(ctx context.Context, date string) (DailyAttendanceResponse, error)
	Board(ctx context.Context) (BoardResponse, error)
	Check(ctx context.Context, req CheckRequest) (AttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
	CreateManual(ctx context.Context, req ManualAttendanceRequest) (AttendanceResponse, error)
	UpdateAttendance(ctx context.Context, req ManualAttendanceRequest) (AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id string) error

	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)
	ExportMonthlyReport(ctx context.Context, req MonthlyReportRequest) (Export, error)
	RangeReport(ctx context.Context, req RangeReportRequest) ([]AttendanceResponse, error)
}
