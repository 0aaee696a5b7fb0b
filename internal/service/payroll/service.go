package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type payrollServiceImpl struct {
	salaryRepo   payroll.SalaryRepository
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
}

func NewPayrollService(
	salaryRepo payroll.SalaryRepository,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &payrollServiceImpl{
		salaryRepo:   salaryRepo,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
	}
}

// ========== SALARY ==========

func (s *payrollServiceImpl) UpsertSalary(ctx context.Context, req payroll.SalaryRequest) (payroll.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.SalaryResponse{}, err
	}

	saved, err := s.salaryRepo.Upsert(ctx, payroll.Salary{
		EmployeeID:  req.EmployeeID,
		BasicSalary: req.BasicSalary,
		HouseRent:   req.HouseRent,
		Medical:     req.Medical,
		Transport:   req.Transport,
	})
	if err != nil {
		return payroll.SalaryResponse{}, err
	}
	return payroll.NewSalaryResponse(saved), nil
}

func (s *payrollServiceImpl) GetSalary(ctx context.Context, employeeID string) (payroll.SalaryResponse, error) {
	salary, err := s.salaryRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}
	return payroll.NewSalaryResponse(salary), nil
}

func (s *payrollServiceImpl) ListSalaries(ctx context.Context) ([]payroll.SalaryResponse, error) {
	list, err := s.salaryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]payroll.SalaryResponse, 0, len(list))
	for _, salary := range list {
		out = append(out, payroll.NewSalaryResponse(salary))
	}
	return out, nil
}

// ========== PAYROLL ==========

func (s *payrollServiceImpl) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.PayrollResponse{}, err
	}

	salary, err := s.salaryRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryNotFound) {
			return payroll.PayrollResponse{}, payroll.ErrEmployeeHasNoSalary
		}
		return payroll.PayrollResponse{}, err
	}

	exists, err := s.payrollRepo.ExistsForPeriod(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if exists {
		return payroll.PayrollResponse{}, payroll.ErrPayrollAlreadyExists
	}

	allowances, overtime, deductions := req.Amounts()
	created, err := s.payrollRepo.Create(ctx, payroll.Payroll{
		EmployeeID:     req.EmployeeID,
		Month:          req.Month,
		Year:           req.Year,
		BasicSalary:    salary.BasicSalary,
		Allowances:     allowances,
		OvertimeAmount: overtime,
		Deductions:     deductions,
		NetSalary:      payroll.NetSalary(salary.BasicSalary, allowances, overtime, deductions),
		Status:         payroll.StatusPending,
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.NewPayrollResponse(created), nil
}

// CalculatePayroll creates a basic-only payroll per candidate. A payroll that
// appears concurrently for the same period is counted as skipped.
func (s *payrollServiceImpl) CalculatePayroll(ctx context.Context, req payroll.PeriodRequest) (payroll.CalculateResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculateResult{}, err
	}

	candidates, err := s.payrollRepo.ListCandidates(ctx, req.Month, req.Year)
	if err != nil {
		return payroll.CalculateResult{}, fmt.Errorf("failed to list payroll candidates: %w", err)
	}

	result := payroll.CalculateResult{Month: req.Month, Year: req.Year}
	for _, c := range candidates {
		_, err := s.payrollRepo.Create(ctx, payroll.Payroll{
			EmployeeID:     c.EmployeeID,
			Month:          req.Month,
			Year:           req.Year,
			BasicSalary:    c.BasicSalary,
			Allowances:     decimal.Zero,
			OvertimeAmount: decimal.Zero,
			Deductions:     decimal.Zero,
			NetSalary:      c.BasicSalary,
			Status:         payroll.StatusPending,
		})
		if errors.Is(err, payroll.ErrPayrollAlreadyExists) {
			result.Skipped++
			continue
		}
		if err != nil {
			return result, err
		}
		result.Created++
	}

	slog.Info("Payroll calculated", "month", req.Month, "year", req.Year, "created", result.Created, "skipped", result.Skipped)
	return result, nil
}

func (s *payrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.NewPayrollResponse(p), nil
}

func (s *payrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollResponse, error) {
	list, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return payroll.NewPayrollResponses(list), nil
}

func (s *payrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.MarkPaid(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	slog.Info("Payroll marked as paid", "payroll_id", id, "employee_id", p.EmployeeID)
	return payroll.NewPayrollResponse(p), nil
}

func (s *payrollServiceImpl) DeletePayroll(ctx context.Context, id string) error {
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status == payroll.StatusPaid {
		return payroll.ErrPayrollAlreadyPaid
	}
	return s.payrollRepo.Delete(ctx, id)
}

func (s *payrollServiceImpl) PayrollReport(ctx context.Context, req payroll.PeriodRequest) (payroll.PayrollReportResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollReportResponse{}, err
	}
	list, err := s.payrollRepo.List(ctx, payroll.PayrollFilter{Month: &req.Month, Year: &req.Year})
	if err != nil {
		return payroll.PayrollReportResponse{}, err
	}
	return payroll.NewPayrollReport(req.Month, req.Year, list), nil
}
