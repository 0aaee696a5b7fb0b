package attendance

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	summarySheet      = "Summary"
	detailSheet       = "Attendance"
	headerFillColor   = "#4472C4"
	headerFontColor   = "#FFFFFF"
	summaryColumnSize = 16
)

func memberOf(e employee.WithSchedule) attendance.Member {
	m := attendance.Member{EmployeeID: e.ID, Name: e.FullName()}
	if e.ScheduleTimeIn != nil && e.ScheduleTimeOut != nil {
		m.Shift = &attendance.Shift{TimeIn: *e.ScheduleTimeIn, TimeOut: *e.ScheduleTimeOut}
	}
	return m
}

// reportMembers returns the employees a monthly report covers with their
// shifts. Employees who are no longer active still get their shift when they
// have rows in the month or are the filtered employee.
func (s *AttendanceServiceImpl) reportMembers(ctx context.Context, employeeID *string, rows []attendance.Attendance) ([]attendance.Member, error) {
	var members []attendance.Member
	known := make(map[string]bool)

	if employeeID == nil {
		active, err := s.employeeRepo.ListActiveWithSchedule(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list active employees: %w", err)
		}
		for _, e := range active {
			members = append(members, memberOf(e))
			known[e.ID] = true
		}
	}

	var missing []string
	if employeeID != nil {
		missing = append(missing, *employeeID)
		known[*employeeID] = true
	}
	for _, row := range rows {
		if !known[row.EmployeeID] {
			missing = append(missing, row.EmployeeID)
			known[row.EmployeeID] = true
		}
	}
	if len(missing) == 0 {
		return members, nil
	}

	others, err := s.employeeRepo.ListWithScheduleByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to load report employees: %w", err)
	}
	for _, e := range others {
		members = append(members, memberOf(e))
	}

	if employeeID != nil && len(others) == 0 {
		return nil, employee.ErrEmployeeNotFound
	}
	return members, nil
}

// MonthlyReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthlyReport(ctx context.Context, req attendance.MonthlyReportRequest) (attendance.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlyReportResponse{}, err
	}

	start, end := utils.MonthRange(req.Year, time.Month(req.Month))
	rows, err := s.AttendanceRepository.List(ctx, attendance.AttendanceFilter{
		EmployeeID: req.EmployeeID,
		From:       &start,
		To:         &end,
	})
	if err != nil {
		return attendance.MonthlyReportResponse{}, err
	}

	members, err := s.reportMembers(ctx, req.EmployeeID, rows)
	if err != nil {
		return attendance.MonthlyReportResponse{}, err
	}

	return attendance.MonthlyReportResponse{
		Year:      req.Year,
		Month:     req.Month,
		MonthName: time.Month(req.Month).String(),
		StartDate: start.Format(utils.DateLayout),
		EndDate:   end.Format(utils.DateLayout),
		Stats:     attendance.Aggregate(rows, members),
		Rows:      attendance.NewAttendanceResponses(rows),
	}, nil
}

// ExportMonthlyReport renders the monthly report as an XLSX workbook with a
// summary sheet and a detail sheet.
func (s *AttendanceServiceImpl) ExportMonthlyReport(ctx context.Context, req attendance.MonthlyReportRequest) (attendance.Export, error) {
	report, err := s.MonthlyReport(ctx, req)
	if err != nil {
		return attendance.Export{}, err
	}

	content, err := renderMonthlyReport(report)
	if err != nil {
		return attendance.Export{}, err
	}

	return attendance.Export{
		Filename:    fmt.Sprintf("attendance-%04d-%02d.xlsx", report.Year, report.Month),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}

func renderMonthlyReport(report attendance.MonthlyReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: headerFontColor},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	title := fmt.Sprintf("Attendance report %s %d", report.MonthName, report.Year)
	if err := f.SetCellValue(summarySheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(summarySheet, "A2", report.StartDate+" - "+report.EndDate); err != nil {
		return nil, err
	}

	summaryHeader := []any{"Employee", "Present", "Absent", "Late", "Early out", "Working hours", "Attendance %"}
	if err := writeRow(f, summarySheet, 4, summaryHeader); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(summarySheet, "A4", "G4", headerStyle); err != nil {
		return nil, err
	}
	for i, st := range report.Stats {
		row := []any{st.EmployeeName, st.Present, st.Absent, st.Late, st.EarlyOut, st.WorkingHours, st.AttendancePercentage}
		if err := writeRow(f, summarySheet, 5+i, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "G", summaryColumnSize); err != nil {
		return nil, err
	}

	detailHeader := []any{"Date", "Employee", "Status", "Time in", "Time out", "Description"}
	if err := writeRow(f, detailSheet, 1, detailHeader); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(detailSheet, "A1", "F1", headerStyle); err != nil {
		return nil, err
	}
	for i, r := range report.Rows {
		row := []any{r.Date, r.EmployeeName, r.Status, timeCell(r.TimeIn), timeCell(r.TimeOut), stringCell(r.Description)}
		if err := writeRow(f, detailSheet, 2+i, row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(detailSheet, "A", "F", summaryColumnSize); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func timeCell(t *timeofday.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func stringCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
