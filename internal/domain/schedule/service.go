package schedule

import "context"

type ScheduleService interface {
	CreateSchedule(ctx context.Context, req ScheduleRequest) (ScheduleResponse, error)
	GetSchedule(ctx context.Context, id string) (ScheduleResponse, error)
	ListSchedules(ctx context.Context) ([]ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, req ScheduleRequest) (ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, id string) error
}
