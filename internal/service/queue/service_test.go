package queue

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SBS-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SBS-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SBS-SchedulingService/internal/integrations/notifyservice"
	"github.com/m04kA/SBS-SchedulingService/internal/service/queue/models"
	"github.com/m04kA/SBS-SchedulingService/pkg/ptr"
	"github.com/m04kA/SBS-SchedulingService/pkg/types"
)

type fakeAppointmentRepo struct {
	byID map[int64]*domain.Appointment
}

func newFakeRepo(appointments ...*domain.Appointment) *fakeAppointmentRepo {
	repo := &fakeAppointmentRepo{byID: map[int64]*domain.Appointment{}}
	for _, a := range appointments {
		repo.byID[a.ID] = a
	}
	return repo
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeAppointmentRepo) GetByDate(_ context.Context, date time.Time, includeCancelled bool) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, a := range f.byID {
		if !sameDay(a.AppointmentDate, date) {
			continue
		}
		if !includeCancelled && a.Status == domain.StatusCancelled {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].QueueSequence != result[j].QueueSequence {
			return result[i].QueueSequence < result[j].QueueSequence
		}
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})
	return result, nil
}

func (f *fakeAppointmentRepo) GetInProgress(_ context.Context) (*domain.Appointment, error) {
	for _, a := range f.byID {
		if a.Status == domain.StatusInProgress {
			return a, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	a, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAppointmentRepo) Complete(_ context.Context, id int64, finalPrice float64) error {
	a, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = domain.StatusCompleted
	a.FinalPrice = &finalPrice
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64, reason string) error {
	a, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	now := time.Now()
	a.Status = domain.StatusCancelled
	a.CancellationReason = &reason
	a.CancelledAt = &now
	return nil
}

func (f *fakeAppointmentRepo) UpdateQueueSequence(_ context.Context, id int64, sequence int) error {
	a, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.QueueSequence = sequence
	return nil
}

func (f *fakeAppointmentRepo) MaxQueueSequence(_ context.Context, date time.Time) (int, error) {
	max := 0
	for _, a := range f.byID {
		if sameDay(a.AppointmentDate, date) && a.QueueSequence > max {
			max = a.QueueSequence
		}
	}
	return max, nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

type fakeNotifyClient struct {
	chairFree []*notifyservice.ChairFreeNotification
	noShows   []*notifyservice.NoShowReport
	degraded  bool
}

func (f *fakeNotifyClient) NotifyChairFreeWithGracefulDegradation(_ context.Context, n *notifyservice.ChairFreeNotification) error {
	f.chairFree = append(f.chairFree, n)
	if f.degraded {
		return notifyservice.ErrServiceDegraded
	}
	return nil
}

func (f *fakeNotifyClient) ReportNoShowWithGracefulDegradation(_ context.Context, r *notifyservice.NoShowReport) error {
	f.noShows = append(f.noShows, r)
	if f.degraded {
		return notifyservice.ErrServiceDegraded
	}
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testToday = time.Date(2025, 11, 12, 10, 30, 0, 0, time.Local)

func queuedAppointment(id int64, start string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		ClientID:        ptr.Ptr(id * 10),
		ClientName:      "Клиент",
		AppointmentDate: testToday,
		StartTime:       types.TimeString(start),
		DurationMinutes: 30,
		Status:          status,
		ServiceName:     "Стрижка",
		ServicePrice:    1200,
	}
}

func newService(repo *fakeAppointmentRepo, notify *fakeNotifyClient) *Service {
	s := NewService(repo, notify, fakeTxManager{}, nopLogger{})
	s.timeProvider = &fixedTimeProvider{now: testToday}
	return s
}

func TestGetQueueOrderAndServing(t *testing.T) {
	repo := newFakeRepo(
		queuedAppointment(1, "11:00", domain.StatusConfirmed),
		queuedAppointment(2, "10:00", domain.StatusInProgress),
		queuedAppointment(3, "10:30", domain.StatusPending),
		queuedAppointment(4, "09:00", domain.StatusCompleted),
	)
	s := newService(repo, &fakeNotifyClient{})

	resp, err := s.GetQueue(context.Background())
	require.NoError(t, err)

	require.NotNil(t, resp.CurrentlyServing)
	assert.Equal(t, int64(2), resp.CurrentlyServing.ID)

	// Завершенные и обслуживаемые в очередь не попадают
	require.Len(t, resp.Queue, 2)
	assert.Equal(t, int64(3), resp.Queue[0].AppointmentID)
	assert.Equal(t, int64(1), resp.Queue[1].AppointmentID)
	assert.Equal(t, 1, resp.Queue[0].Position)
	assert.Equal(t, 2, resp.Queue[1].Position)
}

func TestGetQueueSkippedGoesAfterLaterTime(t *testing.T) {
	first := queuedAppointment(1, "10:00", domain.StatusConfirmed)
	first.QueueSequence = 3 // пропущен
	second := queuedAppointment(2, "11:00", domain.StatusConfirmed)

	repo := newFakeRepo(first, second)
	s := newService(repo, &fakeNotifyClient{})

	resp, err := s.GetQueue(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Queue, 2)
	assert.Equal(t, int64(2), resp.Queue[0].AppointmentID)
	assert.Equal(t, int64(1), resp.Queue[1].AppointmentID)
}

func TestCallNextPicksFirstInQueue(t *testing.T) {
	repo := newFakeRepo(
		queuedAppointment(1, "10:30", domain.StatusPending),
		queuedAppointment(2, "10:00", domain.StatusConfirmed),
	)
	notify := &fakeNotifyClient{}
	s := newService(repo, notify)

	resp, err := s.CallNext(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(2), resp.ID)
	assert.Equal(t, string(domain.StatusInProgress), resp.Status)
	assert.Equal(t, domain.StatusInProgress, repo.byID[2].Status)

	// Клиент получил уведомление "кресло свободно"
	require.Len(t, notify.chairFree, 1)
	assert.Equal(t, int64(2), notify.chairFree[0].AppointmentID)
}

func TestCallNextEmptyQueueNoOp(t *testing.T) {
	repo := newFakeRepo()
	notify := &fakeNotifyClient{}
	s := newService(repo, notify)

	resp, err := s.CallNext(context.Background())
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Empty(t, notify.chairFree)
}

func TestCallNextChairBusy(t *testing.T) {
	repo := newFakeRepo(
		queuedAppointment(1, "10:00", domain.StatusInProgress),
		queuedAppointment(2, "10:30", domain.StatusConfirmed),
	)
	s := newService(repo, &fakeNotifyClient{})

	_, err := s.CallNext(context.Background())
	assert.ErrorIs(t, err, ErrChairBusy)
	// Статус второй записи не тронут
	assert.Equal(t, domain.StatusConfirmed, repo.byID[2].Status)
}

func TestCallNextNotifyDegradationNotFatal(t *testing.T) {
	repo := newFakeRepo(queuedAppointment(1, "10:00", domain.StatusConfirmed))
	notify := &fakeNotifyClient{degraded: true}
	s := newService(repo, notify)

	resp, err := s.CallNext(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, domain.StatusInProgress, repo.byID[1].Status)
}

func TestSkipMovesToBack(t *testing.T) {
	first := queuedAppointment(1, "10:00", domain.StatusConfirmed)
	second := queuedAppointment(2, "10:30", domain.StatusPending)
	repo := newFakeRepo(first, second)
	s := newService(repo, &fakeNotifyClient{})

	err := s.Skip(context.Background(), 1)
	require.NoError(t, err)

	// queue_sequence увеличен, плановое время не тронуто
	assert.Equal(t, 1, repo.byID[1].QueueSequence)
	assert.Equal(t, types.TimeString("10:00"), repo.byID[1].StartTime)

	// Следующим вызывается второй клиент
	resp, err := s.CallNext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)
}

func TestSkipTwiceKeepsMovingBack(t *testing.T) {
	first := queuedAppointment(1, "10:00", domain.StatusConfirmed)
	second := queuedAppointment(2, "10:30", domain.StatusPending)
	repo := newFakeRepo(first, second)
	s := newService(repo, &fakeNotifyClient{})

	require.NoError(t, s.Skip(context.Background(), 1))
	require.NoError(t, s.Skip(context.Background(), 2))

	// Второй skip ставит id=2 за id=1
	assert.Equal(t, 1, repo.byID[1].QueueSequence)
	assert.Equal(t, 2, repo.byID[2].QueueSequence)
}

func TestSkipNotInQueue(t *testing.T) {
	repo := newFakeRepo(queuedAppointment(1, "10:00", domain.StatusInProgress))
	s := newService(repo, &fakeNotifyClient{})

	err := s.Skip(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotInQueue)
}

func TestCompleteDefaultsToServicePrice(t *testing.T) {
	a := queuedAppointment(1, "10:00", domain.StatusInProgress)
	repo := newFakeRepo(a)
	s := newService(repo, &fakeNotifyClient{})

	err := s.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, a.Status)
	require.NotNil(t, a.FinalPrice)
	assert.Equal(t, 1200.0, *a.FinalPrice)
}

func TestCompleteWithExplicitPrice(t *testing.T) {
	a := queuedAppointment(1, "10:00", domain.StatusInProgress)
	repo := newFakeRepo(a)
	s := newService(repo, &fakeNotifyClient{})

	err := s.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{
		FinalPrice: ptr.Ptr(1500.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, *a.FinalPrice)
}

func TestCompleteRequiresInProgress(t *testing.T) {
	repo := newFakeRepo(queuedAppointment(1, "10:00", domain.StatusConfirmed))
	s := newService(repo, &fakeNotifyClient{})

	err := s.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCompleteNegativePriceRejected(t *testing.T) {
	repo := newFakeRepo(queuedAppointment(1, "10:00", domain.StatusInProgress))
	s := newService(repo, &fakeNotifyClient{})

	err := s.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{
		FinalPrice: ptr.Ptr(-1.0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompleteNotifiesNextInQueue(t *testing.T) {
	serving := queuedAppointment(1, "10:00", domain.StatusInProgress)
	next := queuedAppointment(2, "10:30", domain.StatusConfirmed)
	repo := newFakeRepo(serving, next)
	notify := &fakeNotifyClient{}
	s := newService(repo, notify)

	err := s.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{})
	require.NoError(t, err)

	// Кресло освободилось: уведомление уходит первому в очереди
	require.Len(t, notify.chairFree, 1)
	assert.Equal(t, int64(2), notify.chairFree[0].AppointmentID)
}

func TestCompleteEmptyQueueNoNotification(t *testing.T) {
	serving := queuedAppointment(1, "10:00", domain.StatusInProgress)
	repo := newFakeRepo(serving)
	notify := &fakeNotifyClient{}
	s := newService(repo, notify)

	err := s.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{})
	require.NoError(t, err)
	assert.Empty(t, notify.chairFree)
}

func TestCompleteNotifyDegradationNotFatal(t *testing.T) {
	serving := queuedAppointment(1, "10:00", domain.StatusInProgress)
	next := queuedAppointment(2, "10:30", domain.StatusPending)
	repo := newFakeRepo(serving, next)
	notify := &fakeNotifyClient{degraded: true}
	s := newService(repo, notify)

	err := s.Complete(context.Background(), 1, &models.CompleteAppointmentRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, serving.Status)
}

func TestCancelFromQueue(t *testing.T) {
	a := queuedAppointment(1, "10:00", domain.StatusConfirmed)
	repo := newFakeRepo(a)
	s := newService(repo, &fakeNotifyClient{})

	err := s.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		CancellationReason: "клиент попросил перенести",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, a.Status)
	require.NotNil(t, a.CancellationReason)
	assert.Equal(t, "клиент попросил перенести", *a.CancellationReason)
	assert.NotNil(t, a.CancelledAt)
}

func TestCancelTerminalRejected(t *testing.T) {
	completed := queuedAppointment(1, "10:00", domain.StatusCompleted)
	cancelled := queuedAppointment(2, "11:00", domain.StatusCancelled)
	repo := newFakeRepo(completed, cancelled)
	s := newService(repo, &fakeNotifyClient{})

	err := s.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)

	err = s.Cancel(context.Background(), 2, &models.CancelAppointmentRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelInProgressAllowed(t *testing.T) {
	a := queuedAppointment(1, "10:00", domain.StatusInProgress)
	repo := newFakeRepo(a)
	s := newService(repo, &fakeNotifyClient{})

	err := s.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, a.Status)
}

func TestNoShowCancelsAndReports(t *testing.T) {
	a := queuedAppointment(1, "10:00", domain.StatusConfirmed)
	repo := newFakeRepo(a)
	notify := &fakeNotifyClient{}
	s := newService(repo, notify)

	err := s.NoShow(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, a.Status)
	require.NotNil(t, a.CancellationReason)
	assert.Equal(t, domain.CancelReasonNoShow, *a.CancellationReason)

	require.Len(t, notify.noShows, 1)
	assert.Equal(t, int64(1), notify.noShows[0].AppointmentID)
}

func TestNoShowReportDegradationNotFatal(t *testing.T) {
	a := queuedAppointment(1, "10:00", domain.StatusConfirmed)
	repo := newFakeRepo(a)
	s := newService(repo, &fakeNotifyClient{degraded: true})

	err := s.NoShow(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, a.Status)
}

func TestNoShowRequiresQueuedStatus(t *testing.T) {
	repo := newFakeRepo(queuedAppointment(1, "10:00", domain.StatusInProgress))
	s := newService(repo, &fakeNotifyClient{})

	err := s.NoShow(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotInQueue)
}

func TestGetAppointmentNotFound(t *testing.T) {
	s := newService(newFakeRepo(), &fakeNotifyClient{})

	_, err := s.GetAppointment(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
