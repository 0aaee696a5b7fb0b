package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListLeaves(w http.ResponseWriter, r *http.Request)
	GetLeave(w http.ResponseWriter, r *http.Request)
	CreateLeave(w http.ResponseWriter, r *http.Request)
	UpdateLeave(w http.ResponseWriter, r *http.Request)
	DeleteLeave(w http.ResponseWriter, r *http.Request)
	ProcessLeave(w http.ResponseWriter, r *http.Request)
	LeaveReport(w http.ResponseWriter, r *http.Request)
	LeaveBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// ListLeaves implements LeaveHandler. Employees only ever see their own leaves.
func (l *LeaveHandlerImpl) ListLeaves(w http.ResponseWriter, r *http.Request) {
	filter := leave.LeaveFilter{
		Status:     queryString(r, "status"),
		EmployeeID: queryString(r, "employee_id"),
	}

	leaves, err := l.leaveService.ListLeaves(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}

// GetLeave implements LeaveHandler.
func (l *LeaveHandlerImpl) GetLeave(w http.ResponseWriter, r *http.Request) {
	result, err := l.leaveService.GetLeave(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// CreateLeave implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req leave.LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := l.leaveService.CreateLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted successfully", result)
}

// UpdateLeave implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateLeave(w http.ResponseWriter, r *http.Request) {
	var req leave.LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := l.leaveService.UpdateLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request updated successfully", result)
}

// DeleteLeave implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	if err := l.leaveService.DeleteLeave(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}

// ProcessLeave implements LeaveHandler. Body: {"action": "approve" | "reject"}.
func (l *LeaveHandlerImpl) ProcessLeave(w http.ResponseWriter, r *http.Request) {
	var req leave.ProcessLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ProcessLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := l.leaveService.ProcessLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request processed successfully", result)
}

// LeaveReport implements LeaveHandler.
func (l *LeaveHandlerImpl) LeaveReport(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	from := parseDateParam(r, "start_date", &errs)
	to := parseDateParam(r, "end_date", &errs)
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	filter := leave.LeaveFilter{
		Status:     queryString(r, "status"),
		EmployeeID: queryString(r, "employee_id"),
		From:       from,
		To:         to,
	}

	leaves, err := l.leaveService.LeaveReport(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}

// LeaveBalance implements LeaveHandler. Without employee_id the caller's own employee is used.
func (l *LeaveHandlerImpl) LeaveBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		if actor, ok := user.ActorFromContext(r.Context()); ok && actor.EmployeeID != nil {
			employeeID = *actor.EmployeeID
		}
	}
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	year, ok := queryInt(r, "year")
	if !ok {
		response.BadRequest(w, "year must be a number", nil)
		return
	}
	var y int
	if year != nil {
		y = *year
	}

	balance, err := l.leaveService.LeaveBalance(r.Context(), employeeID, y)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balance)
}

// parseDateParam returns nil for a missing parameter and records a field error for a malformed one.
func parseDateParam(r *http.Request, key string, errs *validator.ValidationErrors) *time.Time {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	date, ok := utils.ParseDate(value)
	if !ok {
		*errs = append(*errs, validator.ValidationError{Field: key, Message: key + " must be in YYYY-MM-DD format"})
		return nil
	}
	return &date
}
