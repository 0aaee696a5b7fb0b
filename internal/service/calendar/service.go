package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/calendar"
)

type calendarServiceImpl struct {
	workingDays calendar.WorkingDayRepository
	holidays    calendar.HolidayRepository
}

func NewCalendarService(workingDays calendar.WorkingDayRepository, holidays calendar.HolidayRepository) calendar.CalendarService {
	return &calendarServiceImpl{
		workingDays: workingDays,
		holidays:    holidays,
	}
}

// ==================== WORKING DAYS ====================

func (s *calendarServiceImpl) ListWorkingDays(ctx context.Context) ([]calendar.WorkingDayResponse, error) {
	configs, err := s.workingDays.List(ctx)
	if err != nil {
		return nil, err
	}

	var stored [7]bool
	for _, c := range configs {
		if calendar.IsValidWeekday(c.Weekday) {
			stored[c.Weekday] = true
		}
	}

	for weekday, ok := range stored {
		if ok {
			continue
		}
		created, err := s.workingDays.Create(ctx, calendar.DefaultWorkingDay(weekday))
		if err != nil && !errors.Is(err, calendar.ErrWorkingDayExists) {
			return nil, fmt.Errorf("failed to store default working day %d: %w", weekday, err)
		}
		if err == nil {
			slog.Info("Default working day stored", "weekday", weekday, "day_name", created.DayName)
			configs = append(configs, created)
		}
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].Weekday < configs[j].Weekday })

	responses := make([]calendar.WorkingDayResponse, 0, len(configs))
	for _, c := range configs {
		responses = append(responses, calendar.NewWorkingDayResponse(c))
	}
	return responses, nil
}

// ToggleWorkingDay flips one weekday, storing its default first when absent.
func (s *calendarServiceImpl) ToggleWorkingDay(ctx context.Context, weekday int) (calendar.WorkingDayResponse, error) {
	if !calendar.IsValidWeekday(weekday) {
		return calendar.WorkingDayResponse{}, calendar.ErrInvalidWeekday
	}

	current, err := s.workingDays.GetByWeekday(ctx, weekday)
	if errors.Is(err, calendar.ErrWorkingDayNotFound) {
		current, err = s.workingDays.Create(ctx, calendar.DefaultWorkingDay(weekday))
	}
	if err != nil {
		return calendar.WorkingDayResponse{}, err
	}

	updated, err := s.workingDays.SetWorkingDay(ctx, weekday, !current.IsWorkingDay)
	if err != nil {
		return calendar.WorkingDayResponse{}, err
	}

	slog.Info("Working day toggled", "weekday", weekday, "is_working_day", updated.IsWorkingDay)
	return calendar.NewWorkingDayResponse(updated), nil
}

func (s *calendarServiceImpl) WorkWeek(ctx context.Context) (calendar.WorkWeek, error) {
	configs, err := s.workingDays.List(ctx)
	if err != nil {
		return calendar.WorkWeek{}, fmt.Errorf("failed to load working days: %w", err)
	}
	return calendar.NewWorkWeek(configs), nil
}

// ==================== HOLIDAYS ====================

func (s *calendarServiceImpl) ListHolidays(ctx context.Context) ([]calendar.HolidayResponse, error) {
	list, err := s.holidays.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]calendar.HolidayResponse, 0, len(list))
	for _, h := range list {
		responses = append(responses, calendar.NewHolidayResponse(h))
	}
	return responses, nil
}

func (s *calendarServiceImpl) GetHoliday(ctx context.Context, id string) (calendar.HolidayResponse, error) {
	h, err := s.holidays.GetByID(ctx, id)
	if err != nil {
		return calendar.HolidayResponse{}, err
	}
	return calendar.NewHolidayResponse(h), nil
}

// HolidayOn returns nil when date is not a holiday.
func (s *calendarServiceImpl) HolidayOn(ctx context.Context, date time.Time) (*calendar.Holiday, error) {
	h, err := s.holidays.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, calendar.ErrHolidayNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

func (s *calendarServiceImpl) CreateHoliday(ctx context.Context, req calendar.HolidayRequest) (calendar.HolidayChange, error) {
	if err := req.Validate(); err != nil {
		return calendar.HolidayChange{}, err
	}

	created, err := s.holidays.Create(ctx, calendar.Holiday{
		Name:        req.Name,
		Date:        req.ParsedDate(),
		Description: req.Description,
		Type:        req.Type,
		IsPaid:      req.Paid(),
	})
	if err != nil {
		return calendar.HolidayChange{}, err
	}

	return calendar.HolidayChange{
		Holiday:      calendar.NewHolidayResponse(created),
		AffectedDays: []time.Time{created.Date},
	}, nil
}

// UpdateHoliday reports both the old and the new date when the holiday moved.
func (s *calendarServiceImpl) UpdateHoliday(ctx context.Context, req calendar.HolidayRequest) (calendar.HolidayChange, error) {
	if err := req.Validate(); err != nil {
		return calendar.HolidayChange{}, err
	}

	existing, err := s.holidays.GetByID(ctx, req.ID)
	if err != nil {
		return calendar.HolidayChange{}, err
	}

	updated, err := s.holidays.Update(ctx, calendar.Holiday{
		ID:          existing.ID,
		Name:        req.Name,
		Date:        req.ParsedDate(),
		Description: req.Description,
		Type:        req.Type,
		IsPaid:      req.Paid(),
	})
	if err != nil {
		return calendar.HolidayChange{}, err
	}

	affected := []time.Time{updated.Date}
	if !existing.Date.Equal(updated.Date) {
		affected = append(affected, existing.Date)
	}
	return calendar.HolidayChange{Holiday: calendar.NewHolidayResponse(updated), AffectedDays: affected}, nil
}

func (s *calendarServiceImpl) DeleteHoliday(ctx context.Context, id string) (calendar.HolidayChange, error) {
	existing, err := s.holidays.GetByID(ctx, id)
	if err != nil {
		return calendar.HolidayChange{}, err
	}
	if err := s.holidays.Delete(ctx, id); err != nil {
		return calendar.HolidayChange{}, err
	}
	return calendar.HolidayChange{
		Holiday:      calendar.NewHolidayResponse(existing),
		AffectedDays: []time.Time{existing.Date},
	}, nil
}
