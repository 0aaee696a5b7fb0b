package calendar

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryWorkingDays struct {
	rows map[int]calendar.WorkingDayConfig
}

func (m *memoryWorkingDays) List(context.Context) ([]calendar.WorkingDayConfig, error) {
	out := make([]calendar.WorkingDayConfig, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, c)
	}
	return out, nil
}

func (m *memoryWorkingDays) GetByWeekday(_ context.Context, weekday int) (calendar.WorkingDayConfig, error) {
	c, ok := m.rows[weekday]
	if !ok {
		return calendar.WorkingDayConfig{}, calendar.ErrWorkingDayNotFound
	}
	return c, nil
}

func (m *memoryWorkingDays) Create(_ context.Context, c calendar.WorkingDayConfig) (calendar.WorkingDayConfig, error) {
	if _, ok := m.rows[c.Weekday]; ok {
		return calendar.WorkingDayConfig{}, calendar.ErrWorkingDayExists
	}
	m.rows[c.Weekday] = c
	return c, nil
}

func (m *memoryWorkingDays) SetWorkingDay(_ context.Context, weekday int, isWorkingDay bool) (calendar.WorkingDayConfig, error) {
	c := m.rows[weekday]
	c.IsWorkingDay = isWorkingDay
	m.rows[weekday] = c
	return c, nil
}

type memoryHolidays struct {
	calendar.HolidayRepository
	rows map[string]calendar.Holiday
	seq  int
}

func (m *memoryHolidays) GetByID(_ context.Context, id string) (calendar.Holiday, error) {
	h, ok := m.rows[id]
	if !ok {
		return calendar.Holiday{}, calendar.ErrHolidayNotFound
	}
	return h, nil
}

func (m *memoryHolidays) GetByDate(_ context.Context, date time.Time) (calendar.Holiday, error) {
	for _, h := range m.rows {
		if h.Date.Equal(date) {
			return h, nil
		}
	}
	return calendar.Holiday{}, calendar.ErrHolidayNotFound
}

func (m *memoryHolidays) Create(_ context.Context, h calendar.Holiday) (calendar.Holiday, error) {
	m.seq++
	h.ID = fmt.Sprintf("hol-%d", m.seq)
	m.rows[h.ID] = h
	return h, nil
}

func (m *memoryHolidays) Update(_ context.Context, h calendar.Holiday) (calendar.Holiday, error) {
	m.rows[h.ID] = h
	return h, nil
}

func (m *memoryHolidays) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func newService() (calendar.CalendarService, *memoryWorkingDays, *memoryHolidays) {
	wd := &memoryWorkingDays{rows: map[int]calendar.WorkingDayConfig{}}
	hol := &memoryHolidays{rows: map[string]calendar.Holiday{}}
	return NewCalendarService(wd, hol), wd, hol
}

func TestListWorkingDays_StoresDefaults(t *testing.T) {
	svc, wd, _ := newService()
	wd.rows[5] = calendar.WorkingDayConfig{Weekday: 5, DayName: "Saturday", IsWorkingDay: true}

	days, err := svc.ListWorkingDays(context.Background())
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.Len(t, wd.rows, 7)

	assert.Equal(t, "Monday", days[0].DayName)
	assert.True(t, days[0].IsWorkingDay)
	assert.True(t, days[5].IsWorkingDay, "stored saturday kept")
	assert.False(t, days[6].IsWorkingDay)
}

func TestToggleWorkingDay(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.ToggleWorkingDay(ctx, 7)
	assert.ErrorIs(t, err, calendar.ErrInvalidWeekday)

	got, err := svc.ToggleWorkingDay(ctx, 6)
	require.NoError(t, err)
	assert.True(t, got.IsWorkingDay, "sunday defaults to off, so the toggle turns it on")

	ww, err := svc.WorkWeek(ctx)
	require.NoError(t, err)
	assert.True(t, ww.IsWorkingWeekday(6))

	got, err = svc.ToggleWorkingDay(ctx, 6)
	require.NoError(t, err)
	assert.False(t, got.IsWorkingDay)
}

func TestHolidayLifecycle_ReportsAffectedDays(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	created, err := svc.CreateHoliday(ctx, calendar.HolidayRequest{Name: "Christmas", Date: "2025-12-25"})
	require.NoError(t, err)
	assert.True(t, created.Holiday.IsPaid)
	christmas := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []time.Time{christmas}, created.AffectedDays)

	on, err := svc.HolidayOn(ctx, christmas)
	require.NoError(t, err)
	require.NotNil(t, on)
	assert.Equal(t, "Christmas", on.Name)

	moved, err := svc.UpdateHoliday(ctx, calendar.HolidayRequest{ID: created.Holiday.ID, Name: "Christmas", Date: "2025-12-26"})
	require.NoError(t, err)
	assert.Equal(t, []time.Time{christmas.AddDate(0, 0, 1), christmas}, moved.AffectedDays)

	deleted, err := svc.DeleteHoliday(ctx, created.Holiday.ID)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{christmas.AddDate(0, 0, 1)}, deleted.AffectedDays)

	none, err := svc.HolidayOn(ctx, christmas)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCreateHoliday_InvalidDate(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.CreateHoliday(context.Background(), calendar.HolidayRequest{Name: "Bad", Date: "2025-13-01"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "date", verrs[0].Field)
}
