package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type leaveServiceImpl struct {
	leave.LeaveRepository
	employee.EmployeeRepository
	now func() time.Time
}

func NewLeaveService(leaveRepository leave.LeaveRepository, employeeRepository employee.EmployeeRepository) leave.LeaveService {
	return &leaveServiceImpl{
		LeaveRepository:    leaveRepository,
		EmployeeRepository: employeeRepository,
		now:                time.Now,
	}
}

// ownEmployeeID returns the employee a restricted caller is limited to. ok is
// false for callers that may see every leave, including internal calls
// without an actor.
func ownEmployeeID(ctx context.Context) (id string, restricted bool, err error) {
	actor, ok := user.ActorFromContext(ctx)
	if !ok || actor.Can(user.PermissionLeaveViewAll) {
		return "", false, nil
	}
	if actor.EmployeeID == nil {
		return "", true, leave.ErrNotLeaveOwner
	}
	return *actor.EmployeeID, true, nil
}

func checkOwner(ctx context.Context, l leave.Leave) error {
	own, restricted, err := ownEmployeeID(ctx)
	if err != nil {
		return err
	}
	if restricted && l.EmployeeID != own {
		return leave.ErrNotLeaveOwner
	}
	return nil
}

func (s *leaveServiceImpl) CreateLeave(ctx context.Context, req leave.LeaveRequest) (leave.LeaveResponse, error) {
	own, restricted, err := ownEmployeeID(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if restricted {
		req.EmployeeID = own
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	start, end := req.Range()

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveResponse{}, err
	}

	overlap, err := s.HasOverlap(ctx, req.EmployeeID, start, end, nil)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	if overlap {
		return leave.LeaveResponse{}, leave.ErrOverlappingLeave
	}

	created, err := s.LeaveRepository.Create(ctx, leave.Leave{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(created), nil
}

// UpdateLeave edits a pending leave. The owning employee never changes.
func (s *leaveServiceImpl) UpdateLeave(ctx context.Context, req leave.LeaveRequest) (leave.LeaveResponse, error) {
	existing, err := s.LeaveRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := checkOwner(ctx, existing); err != nil {
		return leave.LeaveResponse{}, err
	}
	if !existing.IsPending() {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	req.EmployeeID = existing.EmployeeID
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	start, end := req.Range()

	overlap, err := s.HasOverlap(ctx, existing.EmployeeID, start, end, &existing.ID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	if overlap {
		return leave.LeaveResponse{}, leave.ErrOverlappingLeave
	}

	existing.LeaveType = req.LeaveType
	existing.StartDate = start
	existing.EndDate = end
	existing.Reason = req.Reason

	updated, err := s.LeaveRepository.Update(ctx, existing)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(updated), nil
}

// ProcessLeave approves or rejects a pending leave exactly once.
func (s *leaveServiceImpl) ProcessLeave(ctx context.Context, req leave.ProcessLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	var processedBy *string
	if actor, ok := user.ActorFromContext(ctx); ok {
		if !actor.Can(user.PermissionLeaveProcess) {
			return leave.LeaveResponse{}, user.ErrInsufficientPermissions
		}
		processedBy = &actor.UserID
	}

	processed, err := s.UpdateStatus(ctx, req.ID, req.TargetStatus(), processedBy, s.now())
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("Leave processed", "leave_id", processed.ID, "employee_id", processed.EmployeeID, "status", processed.Status)
	return leave.NewLeaveResponse(processed), nil
}

func (s *leaveServiceImpl) DeleteLeave(ctx context.Context, id string) error {
	existing, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwner(ctx, existing); err != nil {
		return err
	}
	if !existing.IsPending() {
		return leave.ErrLeaveAlreadyProcessed
	}
	return s.LeaveRepository.Delete(ctx, id)
}

func (s *leaveServiceImpl) GetLeave(ctx context.Context, id string) (leave.LeaveResponse, error) {
	l, err := s.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := checkOwner(ctx, l); err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(l), nil
}

func (s *leaveServiceImpl) ListLeaves(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveResponse, error) {
	own, restricted, err := ownEmployeeID(ctx)
	if err != nil {
		return nil, err
	}
	if restricted {
		filter.EmployeeID = &own
	}

	list, err := s.LeaveRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveResponse, 0, len(list))
	for _, l := range list {
		responses = append(responses, leave.NewLeaveResponse(l))
	}
	return responses, nil
}

// LeaveReport lists leaves lying fully inside [filter.From, filter.To].
func (s *leaveServiceImpl) LeaveReport(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveResponse, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, leave.ErrInvalidDateRange
	}
	return s.ListLeaves(ctx, filter)
}

func (s *leaveServiceImpl) LeaveBalance(ctx context.Context, employeeID string, year int) (leave.BalanceResponse, error) {
	own, restricted, err := ownEmployeeID(ctx)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	if restricted && employeeID != own {
		return leave.BalanceResponse{}, leave.ErrNotLeaveOwner
	}
	if year == 0 {
		year = s.now().Year()
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	approved, err := s.ListApprovedBetween(ctx, employeeID, yearStart, yearEnd)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to load approved leaves: %w", err)
	}

	return leave.BalanceResponse{
		EmployeeID: employeeID,
		Year:       year,
		Balances:   leave.CalculateBalances(approved, year),
	}, nil
}
