package schedule

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/schedule"
)

type scheduleServiceImpl struct {
	repo schedule.ScheduleRepository
}

func NewScheduleService(repo schedule.ScheduleRepository) schedule.ScheduleService {
	return &scheduleServiceImpl{repo: repo}
}

func (s *scheduleServiceImpl) ensureNameFree(ctx context.Context, name string, excludeID *string) error {
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return schedule.ErrScheduleNameExists
	}
	return nil
}

// CreateSchedule accepts overnight shifts (time_out before time_in) as they are.
func (s *scheduleServiceImpl) CreateSchedule(ctx context.Context, req schedule.ScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if err := s.ensureNameFree(ctx, req.Name, nil); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	in, out := req.Times()
	created, err := s.repo.Create(ctx, schedule.Schedule{Name: req.Name, TimeIn: in, TimeOut: out})
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	return schedule.NewScheduleResponse(created), nil
}

func (s *scheduleServiceImpl) GetSchedule(ctx context.Context, id string) (schedule.ScheduleResponse, error) {
	sc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	return schedule.NewScheduleResponse(sc), nil
}

func (s *scheduleServiceImpl) ListSchedules(ctx context.Context) ([]schedule.ScheduleResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	responses := make([]schedule.ScheduleResponse, 0, len(list))
	for _, sc := range list {
		responses = append(responses, schedule.NewScheduleResponse(sc))
	}
	return responses, nil
}

func (s *scheduleServiceImpl) UpdateSchedule(ctx context.Context, req schedule.ScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if err := s.ensureNameFree(ctx, req.Name, &req.ID); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	in, out := req.Times()
	updated, err := s.repo.Update(ctx, schedule.Schedule{ID: req.ID, Name: req.Name, TimeIn: in, TimeOut: out})
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	return schedule.NewScheduleResponse(updated), nil
}

// DeleteSchedule leaves assigned employees without a schedule.
func (s *scheduleServiceImpl) DeleteSchedule(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
