package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ListByDate(w http.ResponseWriter, r *http.Request)
	Board(w http.ResponseWriter, r *http.Request)
	Check(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)

	GetAttendance(w http.ResponseWriter, r *http.Request)
	CreateAttendance(w http.ResponseWriter, r *http.Request)
	UpdateAttendance(w http.ResponseWriter, r *http.Request)
	DeleteAttendance(w http.ResponseWriter, r *http.Request)

	MonthlyReport(w http.ResponseWriter, r *http.Request)
	ExportMonthlyReport(w http.ResponseWriter, r *http.Request)
	RangeReport(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, loc *time.Location) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		loc:               loc,
	}
}

// ListByDate implements AttendanceHandler. A missing or malformed ?date= means today.
func (h *attendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListByDate(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *attendanceHandlerImpl) Board(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Board(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Check implements AttendanceHandler. Body: {"employee_id": "...", "action": "in" | "out"}.
func (h *attendanceHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Check decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Check(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.Action == string(attendance.CheckIn) {
		response.SuccessWithMessage(w, "Checked in successfully", result)
		return
	}
	response.SuccessWithMessage(w, "Checked out successfully", result)
}

func (h *attendanceHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req attendance.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Generate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.GenerateForRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance generated", result)
}

func (h *attendanceHandlerImpl) GetAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *attendanceHandlerImpl) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CreateManual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Attendance created successfully", result)
}

func (h *attendanceHandlerImpl) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.UpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

func (h *attendanceHandlerImpl) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.DeleteAttendance(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}

// MonthlyReport implements AttendanceHandler. ?year= and ?month= default to the current month.
func (h *attendanceHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	req, err := h.monthlyRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.MonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *attendanceHandlerImpl) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	req, err := h.monthlyRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	export, err := h.attendanceService.ExportMonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, export.Filename, export.ContentType, export.Content)
}

// RangeReport implements AttendanceHandler. Every row is returned unless both dates are given.
func (h *attendanceHandlerImpl) RangeReport(w http.ResponseWriter, r *http.Request) {
	req := attendance.RangeReportRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.attendanceService.RangeReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *attendanceHandlerImpl) monthlyRequest(r *http.Request) (attendance.MonthlyReportRequest, error) {
	now := time.Now().In(h.loc)
	req := attendance.MonthlyReportRequest{
		Year:       now.Year(),
		Month:      int(now.Month()),
		EmployeeID: queryString(r, "employee_id"),
	}

	var errs validator.ValidationErrors
	if year, ok := queryInt(r, "year"); !ok {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
	} else if year != nil {
		req.Year = *year
	}
	if month, ok := queryInt(r, "month"); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
	} else if month != nil {
		req.Month = *month
	}
	return req, errs.Err()
}
