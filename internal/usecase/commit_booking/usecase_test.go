package commit_booking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/internal/engine/conflicts"
	"github.com/ddduartediego/BelloProject-sub000/internal/infra/lock"
	"github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/appointment"
	"github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/catalog"
	"github.com/ddduartediego/BelloProject-sub000/pkg/logger"
	"github.com/ddduartediego/BelloProject-sub000/pkg/metrics"
	"github.com/ddduartediego/BelloProject-sub000/pkg/ptr"
	"github.com/ddduartediego/BelloProject-sub000/pkg/txmanager"
)

const (
	tenantID       = int64(1)
	professionalID = int64(7)
	clientID       = int64(20)
	haircutID      = int64(3) // 45 минут
	trimID         = int64(4) // 10 минут
)

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return monday.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

type staticRules struct {
	rules domain.CalendarRules
}

func (s staticRules) GetRules(_ context.Context, tenantID, _ int64) (*domain.CalendarRules, error) {
	r := s.rules
	r.TenantID = tenantID
	return &r, nil
}

// staleChecker первый раз отвечает "свободно", имитируя устаревшее чтение
type staleChecker struct {
	next  Checker
	calls int32
}

func (c *staleChecker) Check(ctx context.Context, candidate conflicts.Candidate) (*domain.ConflictVerdict, error) {
	if atomic.AddInt32(&c.calls, 1) == 1 {
		return &domain.ConflictVerdict{}, nil
	}
	return c.next.Check(ctx, candidate)
}

type fixture struct {
	uc      *UseCase
	repo    *appointment.MemoryRepository
	checker *conflicts.RemoteChecker
	locker  *lock.KeyedMutex
	metrics *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cat := catalog.NewMemoryRepository()
	cat.AddProfessional(domain.Professional{ID: professionalID, TenantID: tenantID, Name: "Joana", Active: true})
	cat.AddService(domain.Service{ID: haircutID, TenantID: tenantID, Name: "Corte", DurationMinutes: 45, Active: true})
	cat.AddService(domain.Service{ID: trimID, TenantID: tenantID, Name: "Barba", DurationMinutes: 10, Active: true})

	log := logger.NewNop()
	repo := appointment.NewMemoryRepository()
	checker := conflicts.NewRemoteChecker(repo, staticRules{rules: domain.DefaultCalendarRules()}, log)
	locker := lock.NewKeyedMutex()
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	return &fixture{
		uc:      NewUseCase(repo, cat, checker, locker, txmanager.Noop{}, m, time.Second, log),
		repo:    repo,
		checker: checker,
		locker:  locker,
		metrics: m,
	}
}

func (f *fixture) seed(t *testing.T, start time.Time, minutes int, status domain.BookingStatus) *domain.Appointment {
	t.Helper()

	created, err := f.repo.CreateIfNoConflict(context.Background(), &domain.Appointment{
		TenantID:       tenantID,
		ProfessionalID: professionalID,
		ClientID:       99,
		ServiceID:      haircutID,
		ClientName:     "Ana",
		Interval:       domain.TimeInterval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)},
		Status:         status,
	})
	require.NoError(t, err)
	return created
}

func (f *fixture) commits(outcome string) float64 {
	return testutil.ToFloat64(f.metrics.BookingCommitsTotal.WithLabelValues(outcome))
}

func newRequest(start time.Time, serviceID int64) *Request {
	return &Request{
		TenantID:       tenantID,
		ProfessionalID: professionalID,
		ClientID:       clientID,
		ServiceID:      serviceID,
		StartsAt:       start,
		ClientName:     "Bruna",
	}
}

func TestUseCase_Create(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), newRequest(at(9, 0), haircutID))
	require.NoError(t, err)

	a := resp.Appointment
	assert.NotZero(t, a.ID)
	assert.Equal(t, domain.StatusScheduled, a.Status)
	assert.Equal(t, at(9, 45), a.Interval.End, "duration comes from the service")
	assert.Equal(t, "Corte", a.ServiceName)
	assert.False(t, resp.Rescheduled)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, float64(1), f.commits(metrics.OutcomeCommitted))

	stored, err := f.repo.GetByID(context.Background(), tenantID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Interval, stored.Interval)
}

func TestUseCase_Conflict(t *testing.T) {
	f := newFixture(t)
	existing := f.seed(t, at(10, 0), 60, domain.StatusScheduled)

	_, err := f.uc.Execute(context.Background(), newRequest(at(10, 30), haircutID))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, []int64{existing.ID}, conflictErr.Verdict.ConflictIDs())
	require.NotNil(t, conflictErr.Verdict.Suggestion)
	assert.Equal(t, at(11, 15), *conflictErr.Verdict.Suggestion)

	assert.Equal(t, float64(1), f.commits(metrics.OutcomeConflict))
}

func TestUseCase_WarningDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.seed(t, at(10, 0), 10, domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), newRequest(at(10, 10), trimID))
	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "Ana")
	assert.Contains(t, resp.Warnings[0], "10:00")
}

func TestUseCase_TerminalAppointmentsDoNotBlock(t *testing.T) {
	f := newFixture(t)
	f.seed(t, at(10, 0), 60, domain.StatusCancelled)
	f.seed(t, at(10, 0), 60, domain.StatusCompleted)

	_, err := f.uc.Execute(context.Background(), newRequest(at(10, 0), haircutID))
	assert.NoError(t, err)
}

func TestUseCase_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{name: "missing tenant", modify: func(r *Request) { r.TenantID = 0 }, wantErr: ErrInvalidInput},
		{name: "missing start", modify: func(r *Request) { r.StartsAt = time.Time{} }, wantErr: ErrInvalidInput},
		{name: "bad appointment id", modify: func(r *Request) { r.AppointmentID = ptr.Ptr(int64(-1)) }, wantErr: ErrInvalidInput},
		{name: "unknown professional", modify: func(r *Request) { r.ProfessionalID = 404 }, wantErr: ErrProfessionalNotFound},
		{name: "unknown service", modify: func(r *Request) { r.ServiceID = 404 }, wantErr: ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(at(9, 0), haircutID)
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	assert.Equal(t, float64(len(tests)), f.commits(metrics.OutcomeValidation))
}

func TestUseCase_Reschedule(t *testing.T) {
	f := newFixture(t)
	existing := f.seed(t, at(10, 0), 45, domain.StatusConfirmed)

	// новый интервал пересекает старое положение той же записи
	req := newRequest(at(10, 15), haircutID)
	req.AppointmentID = ptr.Ptr(existing.ID)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Rescheduled)
	assert.Equal(t, existing.ID, resp.Appointment.ID)
	assert.Equal(t, domain.StatusConfirmed, resp.Appointment.Status, "status is kept")
	assert.Equal(t, at(10, 15), resp.Appointment.Interval.Start)
}

func TestUseCase_Reschedule_Errors(t *testing.T) {
	f := newFixture(t)
	done := f.seed(t, at(8, 0), 45, domain.StatusCompleted)
	other := f.seed(t, at(12, 0), 45, domain.StatusScheduled)
	moving := f.seed(t, at(15, 0), 45, domain.StatusScheduled)

	req := newRequest(at(9, 0), haircutID)
	req.AppointmentID = ptr.Ptr(done.ID)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAppointmentClosed)

	req.AppointmentID = ptr.Ptr(int64(404))
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = newRequest(at(12, 30), haircutID)
	req.AppointmentID = ptr.Ptr(moving.ID)
	_, err = f.uc.Execute(context.Background(), req)

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, []int64{other.ID}, conflictErr.Verdict.ConflictIDs())
}

func TestUseCase_ConcurrentCommits(t *testing.T) {
	f := newFixture(t)

	const writers = 10
	var (
		wg        sync.WaitGroup
		succeeded int32
		rejected  int32
		start     = make(chan struct{})
	)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start

			req := newRequest(at(14, 0), haircutID)
			req.ClientID = int64(100 + i)

			_, err := f.uc.Execute(context.Background(), req)
			switch {
			case err == nil:
				atomic.AddInt32(&succeeded, 1)
			case errors.Is(err, domain.ErrConflict):
				atomic.AddInt32(&rejected, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), succeeded)
	assert.Equal(t, int32(writers-1), rejected)

	day, err := f.repo.ListByProfessionalAndDate(context.Background(), tenantID, professionalID, monday)
	require.NoError(t, err)
	assert.Len(t, day, 1)
}

func TestUseCase_StorageOverlapBecomesConflict(t *testing.T) {
	f := newFixture(t)
	existing := f.seed(t, at(10, 0), 60, domain.StatusScheduled)

	f.uc.checker = &staleChecker{next: f.checker}

	_, err := f.uc.Execute(context.Background(), newRequest(at(10, 30), haircutID))

	var conflictErr *domain.ConflictError
	require.True(t, errors.As(err, &conflictErr), "got %v", err)
	assert.Equal(t, []int64{existing.ID}, conflictErr.Verdict.ConflictIDs())
	assert.NotNil(t, conflictErr.Verdict.Suggestion)
}

func TestUseCase_LockTimeout(t *testing.T) {
	f := newFixture(t)
	f.uc.lockTimeout = 20 * time.Millisecond

	unlock, err := f.locker.Lock(context.Background(), lock.ProfessionalKey(tenantID, professionalID))
	require.NoError(t, err)
	defer unlock()

	_, err = f.uc.Execute(context.Background(), newRequest(at(9, 0), haircutID))
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.Equal(t, float64(1), f.commits(metrics.OutcomeError))
}
