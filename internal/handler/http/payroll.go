package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Salaries
	ListSalaries(w http.ResponseWriter, r *http.Request)
	GetSalary(w http.ResponseWriter, r *http.Request)
	UpsertSalary(w http.ResponseWriter, r *http.Request)

	// Payrolls
	ListPayrolls(w http.ResponseWriter, r *http.Request)
	GetPayroll(w http.ResponseWriter, r *http.Request)
	CreatePayroll(w http.ResponseWriter, r *http.Request)
	CalculatePayroll(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	DeletePayroll(w http.ResponseWriter, r *http.Request)

	PayrollReport(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	loc            *time.Location
}

func NewPayrollHandler(payrollService payroll.PayrollService, loc *time.Location) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
		loc:            loc,
	}
}

// ==================== SALARY HANDLERS ====================

func (h *payrollHandlerImpl) ListSalaries(w http.ResponseWriter, r *http.Request) {
	results, err := h.payrollService.ListSalaries(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, results)
}

func (h *payrollHandlerImpl) GetSalary(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetSalary(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpsertSalary(w http.ResponseWriter, r *http.Request) {
	var req payroll.SalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertSalary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.payrollService.UpsertSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Salary saved successfully", result)
}

// ==================== PAYROLL HANDLERS ====================

func (h *payrollHandlerImpl) ListPayrolls(w http.ResponseWriter, r *http.Request) {
	month, okMonth := queryInt(r, "month")
	year, okYear := queryInt(r, "year")
	if !okMonth || !okYear {
		response.BadRequest(w, "month and year must be numbers", nil)
		return
	}

	filter := payroll.PayrollFilter{
		Month:      month,
		Year:       year,
		EmployeeID: queryString(r, "employee_id"),
		Limit:      queryLimit(r, 0),
	}

	results, err := h.payrollService.ListPayrolls(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, results, &response.Meta{Count: len(results), Limit: filter.Limit})
}

func (h *payrollHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetPayroll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *payrollHandlerImpl) CreatePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePayroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CreatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payroll created successfully", result)
}

// CalculatePayroll implements PayrollHandler. An empty body means the current month.
func (h *payrollHandlerImpl) CalculatePayroll(w http.ResponseWriter, r *http.Request) {
	req := h.currentPeriod()
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("CalculatePayroll decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	result, err := h.payrollService.CalculatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll calculated successfully", result)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll marked as paid", result)
}

func (h *payrollHandlerImpl) DeletePayroll(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeletePayroll(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll deleted successfully", nil)
}

// PayrollReport implements PayrollHandler. ?month= and ?year= default to the current month.
func (h *payrollHandlerImpl) PayrollReport(w http.ResponseWriter, r *http.Request) {
	req := h.currentPeriod()

	var errs validator.ValidationErrors
	if month, ok := queryInt(r, "month"); !ok {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
	} else if month != nil {
		req.Month = *month
	}
	if year, ok := queryInt(r, "year"); !ok {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
	} else if year != nil {
		req.Year = *year
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.PayrollReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *payrollHandlerImpl) currentPeriod() payroll.PeriodRequest {
	now := time.Now().In(h.loc)
	return payroll.PeriodRequest{Month: int(now.Month()), Year: now.Year()}
}
