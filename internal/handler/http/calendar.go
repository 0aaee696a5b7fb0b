package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"github.com/go-chi/chi/v5"
)

// Recomputer fills in attendance rows for a single day.
type Recomputer interface {
	RecomputeForDate(ctx context.Context, date time.Time) (attendance.GenerateResult, error)
}

type CalendarHandler interface {
	ListWorkingDays(w http.ResponseWriter, r *http.Request)
	ToggleWorkingDay(w http.ResponseWriter, r *http.Request)

	ListHolidays(w http.ResponseWriter, r *http.Request)
	GetHoliday(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	UpdateHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
	recomputer      Recomputer
}

func NewCalendarHandler(calendarService calendar.CalendarService, recomputer Recomputer) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
		recomputer:      recomputer,
	}
}

func (h *calendarHandlerImpl) ListWorkingDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.calendarService.ListWorkingDays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, days)
}

func (h *calendarHandlerImpl) ToggleWorkingDay(w http.ResponseWriter, r *http.Request) {
	weekday, err := strconv.Atoi(chi.URLParam(r, "weekday"))
	if err != nil {
		response.HandleError(w, calendar.ErrInvalidWeekday)
		return
	}

	day, err := h.calendarService.ToggleWorkingDay(r.Context(), weekday)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Working day updated successfully", day)
}

func (h *calendarHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.calendarService.ListHolidays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, holidays)
}

func (h *calendarHandlerImpl) GetHoliday(w http.ResponseWriter, r *http.Request) {
	holiday, err := h.calendarService.GetHoliday(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, holiday)
}

func (h *calendarHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req calendar.HolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	change, err := h.calendarService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.recompute(r.Context(), change)
	response.Created(w, "Holiday created successfully", change.Holiday)
}

func (h *calendarHandlerImpl) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	var req calendar.HolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	change, err := h.calendarService.UpdateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.recompute(r.Context(), change)
	response.SuccessWithMessage(w, "Holiday updated successfully", change.Holiday)
}

func (h *calendarHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	change, err := h.calendarService.DeleteHoliday(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.recompute(r.Context(), change)
	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}

// recompute regenerates attendance for every day the change touched, future
// days included. A failing day is logged and does not fail the request.
func (h *calendarHandlerImpl) recompute(ctx context.Context, change calendar.HolidayChange) attendance.GenerateResult {
	var total attendance.GenerateResult
	for _, day := range change.AffectedDays {
		result, err := h.recomputer.RecomputeForDate(ctx, day)
		if err != nil {
			slog.Error("Failed to recompute attendance after holiday change", "error", err, "date", day.Format(utils.DateLayout))
			continue
		}
		total.Add(result)
	}
	slog.Info("Attendance recomputed after holiday change",
		"days", len(change.AffectedDays),
		"created", total.Created,
		"skipped", total.Skipped,
		"failed", total.Failed,
	)
	return total
}
