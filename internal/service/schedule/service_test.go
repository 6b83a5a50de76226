package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	scheduleRepo "github.com/m04kA/SBS-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SBS-SchedulingService/internal/service/schedule/models"
	"github.com/m04kA/SBS-SchedulingService/pkg/ptr"
)

type fakeScheduleRepo struct {
	cfg        *domain.ScheduleConfig
	exceptions map[string]*domain.ScheduleException
}

func newFakeRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		exceptions: map[string]*domain.ScheduleException{},
	}
}

func (f *fakeScheduleRepo) GetConfig(_ context.Context) (*domain.ScheduleConfig, error) {
	if f.cfg == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return f.cfg, nil
}

func (f *fakeScheduleRepo) UpdateConfig(_ context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	cfg.UpdatedAt = time.Now()
	f.cfg = cfg
	return cfg, nil
}

func (f *fakeScheduleRepo) GetException(_ context.Context, date time.Time) (*domain.ScheduleException, error) {
	exc, ok := f.exceptions[date.Format(domain.DateFormat)]
	if !ok {
		return nil, scheduleRepo.ErrExceptionNotFound
	}
	return exc, nil
}

func (f *fakeScheduleRepo) ListExceptions(_ context.Context, from time.Time) ([]*domain.ScheduleException, error) {
	result := make([]*domain.ScheduleException, 0)
	for _, exc := range f.exceptions {
		if !exc.Date.Before(from.Truncate(24 * time.Hour)) {
			result = append(result, exc)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) UpsertException(_ context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error) {
	exc.UpdatedAt = time.Now()
	f.exceptions[exc.Date.Format(domain.DateFormat)] = exc
	return exc, nil
}

func (f *fakeScheduleRepo) DeleteException(_ context.Context, date time.Time) error {
	key := date.Format(domain.DateFormat)
	if _, ok := f.exceptions[key]; !ok {
		return scheduleRepo.ErrExceptionNotFound
	}
	delete(f.exceptions, key)
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeScheduleRepo, now time.Time) *Service {
	s := NewService(repo, nopLogger{})
	s.timeProvider = &fixedTimeProvider{now: now}
	return s
}

var testNow = time.Date(2025, 11, 12, 12, 0, 0, 0, time.Local)

func TestGetConfigDefaultsWhenMissing(t *testing.T) {
	s := newService(newFakeRepo(), testNow)

	resp, err := s.GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultStartHour, resp.StartHour)
	assert.Equal(t, domain.DefaultEndHour, resp.EndHour)
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, resp.SlotIntervalMinutes)
	assert.Nil(t, resp.ClosedWeekday)
	assert.Empty(t, resp.Exceptions)
}

func TestUpdateConfigPartial(t *testing.T) {
	repo := newFakeRepo()
	repo.cfg = &domain.ScheduleConfig{StartHour: 9, EndHour: 19, SlotIntervalMinutes: 30}
	s := newService(repo, testNow)

	resp, err := s.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
		EndHour: ptr.Ptr(21),
	})
	require.NoError(t, err)

	// Непереданные поля не тронуты
	assert.Equal(t, 9, resp.StartHour)
	assert.Equal(t, 21, resp.EndHour)
	assert.Equal(t, 30, resp.SlotIntervalMinutes)
}

func TestUpdateConfigClosedWeekday(t *testing.T) {
	repo := newFakeRepo()
	repo.cfg = &domain.ScheduleConfig{StartHour: 9, EndHour: 19, SlotIntervalMinutes: 30}
	s := newService(repo, testNow)

	resp, err := s.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
		ClosedWeekday: ptr.Ptr(0),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ClosedWeekday)
	assert.Equal(t, 0, *resp.ClosedWeekday)

	resp, err = s.UpdateConfig(context.Background(), &models.UpdateConfigRequest{
		ClearClosedWeekday: true,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.ClosedWeekday)
}

func TestUpdateConfigValidation(t *testing.T) {
	repo := newFakeRepo()
	repo.cfg = &domain.ScheduleConfig{StartHour: 9, EndHour: 19, SlotIntervalMinutes: 30}
	s := newService(repo, testNow)

	tests := []struct {
		name string
		req  *models.UpdateConfigRequest
	}{
		{"inverted hours", &models.UpdateConfigRequest{StartHour: ptr.Ptr(20)}},
		{"end hour too big", &models.UpdateConfigRequest{EndHour: ptr.Ptr(25)}},
		{"interval too small", &models.UpdateConfigRequest{SlotIntervalMinutes: ptr.Ptr(1)}},
		{"interval too big", &models.UpdateConfigRequest{SlotIntervalMinutes: ptr.Ptr(500)}},
		{"bad weekday", &models.UpdateConfigRequest{ClosedWeekday: ptr.Ptr(7)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UpdateConfig(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpsertAndDeleteException(t *testing.T) {
	repo := newFakeRepo()
	s := newService(repo, testNow)

	date := time.Date(2025, 11, 20, 0, 0, 0, 0, time.Local)
	resp, err := s.UpsertException(context.Background(), &models.UpsertExceptionRequest{
		Date:      date,
		StartHour: ptr.Ptr(13),
		EndHour:   ptr.Ptr(17),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-11-20", resp.Date)

	// Повторный upsert перезаписывает
	resp, err = s.UpsertException(context.Background(), &models.UpsertExceptionRequest{
		Date:   date,
		Closed: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.Closed)

	require.NoError(t, s.DeleteException(context.Background(), date))
	assert.ErrorIs(t, s.DeleteException(context.Background(), date), ErrExceptionNotFound)
}

func TestUpsertExceptionValidation(t *testing.T) {
	s := newService(newFakeRepo(), testNow)
	date := time.Date(2025, 11, 20, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		req  *models.UpsertExceptionRequest
	}{
		{"zero date", &models.UpsertExceptionRequest{}},
		{"inverted hours", &models.UpsertExceptionRequest{Date: date, StartHour: ptr.Ptr(17), EndHour: ptr.Ptr(13)}},
		{"lunch start only", &models.UpsertExceptionRequest{Date: date, LunchStartHour: ptr.Ptr(13)}},
		{"inverted lunch", &models.UpsertExceptionRequest{Date: date, LunchStartHour: ptr.Ptr(14), LunchEndHour: ptr.Ptr(13)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UpsertException(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetShopStatusHourBoundary(t *testing.T) {
	repo := newFakeRepo()
	repo.cfg = &domain.ScheduleConfig{StartHour: 9, EndHour: 19, SlotIntervalMinutes: 30}

	tests := []struct {
		name string
		now  time.Time
		open bool
	}{
		{"before opening", time.Date(2025, 11, 12, 8, 59, 0, 0, time.Local), false},
		{"at opening", time.Date(2025, 11, 12, 9, 0, 0, 0, time.Local), true},
		{"last open hour", time.Date(2025, 11, 12, 18, 59, 0, 0, time.Local), true},
		{"at closing", time.Date(2025, 11, 12, 19, 0, 0, 0, time.Local), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newService(repo, tt.now)
			resp, err := s.GetShopStatus(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.open, resp.Open)
		})
	}
}

func TestGetShopStatusClosedException(t *testing.T) {
	repo := newFakeRepo()
	repo.cfg = &domain.ScheduleConfig{StartHour: 9, EndHour: 19, SlotIntervalMinutes: 30}
	repo.exceptions[testNow.Format(domain.DateFormat)] = &domain.ScheduleException{
		Date:   testNow,
		Closed: true,
	}
	s := newService(repo, testNow)

	resp, err := s.GetShopStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, resp.Open)
	assert.True(t, resp.Closed)
}

func TestGetShopStatusWeeklyClosedDay(t *testing.T) {
	repo := newFakeRepo()
	// 2025-11-12 - среда (weekday 3)
	repo.cfg = &domain.ScheduleConfig{
		StartHour: 9, EndHour: 19, SlotIntervalMinutes: 30,
		ClosedWeekday: ptr.Ptr(3),
	}
	s := newService(repo, testNow)

	resp, err := s.GetShopStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, resp.Open)
	assert.True(t, resp.Closed)
}

func TestGetShopStatusExceptionHours(t *testing.T) {
	repo := newFakeRepo()
	repo.cfg = &domain.ScheduleConfig{StartHour: 9, EndHour: 19, SlotIntervalMinutes: 30}
	repo.exceptions[testNow.Format(domain.DateFormat)] = &domain.ScheduleException{
		Date:      testNow,
		StartHour: ptr.Ptr(13),
		EndHour:   ptr.Ptr(17),
	}
	// now = 12:00, до начала укороченного дня
	s := newService(repo, testNow)

	resp, err := s.GetShopStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, resp.Open)
	assert.Equal(t, 13, resp.StartHour)
	assert.Equal(t, 17, resp.EndHour)
}
