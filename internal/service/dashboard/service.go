package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// BalanceSource yields the yearly leave balance shown on the employee dashboard.
type BalanceSource interface {
	LeaveBalance(ctx context.Context, employeeID string, year int) (leave.BalanceResponse, error)
}

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	balances BalanceSource
	loc      *time.Location
	now      func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, balances BalanceSource, loc *time.Location) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		balances:            balances,
		loc:                 loc,
		now:                 time.Now,
	}
}

// GetDashboard runs one query per visible section, all in parallel. Sections are
// picked by permission, so a role sees exactly the areas it can manage.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (dashboard.DashboardResponse, error) {
	actor, ok := user.ActorFromContext(ctx)
	if !ok {
		return dashboard.DashboardResponse{}, user.ErrInsufficientPermissions
	}

	today := utils.Today(s.now(), s.loc)
	resp := dashboard.DashboardResponse{
		Role: string(actor.Role),
		Date: today.Format(utils.DateLayout),
	}

	g, gCtx := errgroup.WithContext(ctx)

	if actor.Can(user.PermissionEmployeeManage) || actor.Can(user.PermissionPayrollManage) {
		g.Go(func() error {
			summary, err := s.CountEmployees(gCtx)
			if err != nil {
				return err
			}
			resp.Employees = &summary
			return nil
		})
	}

	if actor.Can(user.PermissionEmployeeManage) {
		g.Go(func() error {
			n, err := s.CountDepartments(gCtx)
			if err != nil {
				return err
			}
			resp.Departments = &n
			return nil
		})
	}

	if actor.Can(user.PermissionUserManage) {
		g.Go(func() error {
			n, err := s.CountUsers(gCtx)
			if err != nil {
				return err
			}
			resp.Users = &n
			return nil
		})
	}

	if actor.Can(user.PermissionAttendanceManage) {
		g.Go(func() error {
			summary, err := s.CountAttendanceByStatus(gCtx, today)
			if err != nil {
				return err
			}
			resp.TodayAttendance = &summary
			return nil
		})
	}

	if actor.Can(user.PermissionLeaveProcess) {
		g.Go(func() error {
			n, err := s.CountLeaves(gCtx, leave.StatusPending, nil, nil)
			if err != nil {
				return err
			}
			resp.PendingLeaves = &n
			return nil
		})
	}

	if actor.Can(user.PermissionPayrollManage) {
		g.Go(func() error {
			summary, err := s.SumPayroll(gCtx, int(today.Month()), today.Year())
			if err != nil {
				return err
			}
			resp.MonthlyPayroll = &summary
			return nil
		})
	}

	if actor.IsEmployeeOnly() && actor.EmployeeID != nil {
		g.Go(func() error {
			portal, err := s.GetEmployeeDashboard(gCtx, *actor.EmployeeID)
			if err != nil {
				return err
			}
			resp.EmployeePortal = &portal
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}
	return resp, nil
}

// GetEmployeeDashboard is the self-service summary of one employee.
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context, employeeID string) (dashboard.EmployeeDashboardResponse, error) {
	if actor, ok := user.ActorFromContext(ctx); ok && actor.IsEmployeeOnly() {
		if actor.EmployeeID == nil || *actor.EmployeeID != employeeID {
			return dashboard.EmployeeDashboardResponse{}, user.ErrInsufficientPermissions
		}
	}

	today := utils.Today(s.now(), s.loc)
	monthStart, monthEnd := utils.MonthRange(today.Year(), today.Month())
	yearStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	resp := dashboard.EmployeeDashboardResponse{EmployeeID: employeeID}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.RecentAttendance(gCtx, employeeID, dashboard.RecentAttendanceLimit)
		if err != nil {
			return err
		}
		resp.RecentAttendance = attendance.NewAttendanceResponses(rows)
		return nil
	})

	g.Go(func() error {
		rows, err := s.RecentLeaves(gCtx, employeeID, dashboard.RecentLeaveLimit)
		if err != nil {
			return err
		}
		resp.RecentLeaves = make([]leave.LeaveResponse, 0, len(rows))
		for _, l := range rows {
			resp.RecentLeaves = append(resp.RecentLeaves, leave.NewLeaveResponse(l))
		}
		return nil
	})

	g.Go(func() error {
		rows, err := s.RecentPayrolls(gCtx, employeeID, dashboard.RecentPayrollLimit)
		if err != nil {
			return err
		}
		resp.RecentPayrolls = payroll.NewPayrollResponses(rows)
		return nil
	})

	g.Go(func() error {
		balance, err := s.balances.LeaveBalance(gCtx, employeeID, today.Year())
		if err != nil {
			return err
		}
		resp.LeaveBalance = balance.Balances
		return nil
	})

	g.Go(func() error {
		n, err := s.CountPresentDays(gCtx, employeeID, monthStart, monthEnd)
		if err != nil {
			return err
		}
		resp.PresentThisMonth = n
		return nil
	})

	g.Go(func() error {
		n, err := s.CountLeaves(gCtx, leave.StatusPending, &employeeID, nil)
		if err != nil {
			return err
		}
		resp.PendingLeaves = n
		return nil
	})

	g.Go(func() error {
		n, err := s.CountLeaves(gCtx, leave.StatusApproved, &employeeID, &yearStart)
		if err != nil {
			return err
		}
		resp.ApprovedLeavesYTD = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}
	return resp, nil
}
