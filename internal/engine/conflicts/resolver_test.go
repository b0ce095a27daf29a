package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/pkg/logger"
	"github.com/ddduartediego/BelloProject-sub000/pkg/ptr"
)

const (
	tenantID       int64 = 1
	professionalID int64 = 7
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func appointment(id int64, client string, startH, startM, minutes int) *domain.Appointment {
	start := at(startH, startM)
	return &domain.Appointment{
		ID:             id,
		TenantID:       tenantID,
		ProfessionalID: professionalID,
		ClientID:       100 + id,
		ClientName:     client,
		Interval:       domain.TimeInterval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)},
		Status:         domain.StatusScheduled,
	}
}

func candidate(startH, startM, minutes int) Candidate {
	start := at(startH, startM)
	return Candidate{
		TenantID:       tenantID,
		ProfessionalID: professionalID,
		Interval:       domain.TimeInterval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)},
	}
}

func TestResolver_ConflictWithSuggestion(t *testing.T) {
	existing := appointment(1, "Ana", 10, 0, 60)

	verdict := NewResolver(domain.DefaultCalendarRules()).Check(candidate(10, 30, 60), []*domain.Appointment{existing})

	assert.True(t, verdict.HasConflict)
	require.Len(t, verdict.Conflicts, 1)
	assert.Same(t, existing, verdict.Conflicts[0])
	require.NotNil(t, verdict.Suggestion)
	assert.Equal(t, at(11, 15), *verdict.Suggestion)
}

func TestResolver_SuggestionUsesLatestEnd(t *testing.T) {
	existing := []*domain.Appointment{
		appointment(1, "Ana", 10, 0, 60),
		appointment(2, "Bia", 10, 45, 90),
	}

	verdict := NewResolver(domain.DefaultCalendarRules()).Check(candidate(10, 30, 60), existing)

	require.Len(t, verdict.Conflicts, 2)
	require.NotNil(t, verdict.Suggestion)
	assert.Equal(t, at(12, 30), *verdict.Suggestion)
}

func TestResolver_SuggestionOutsideBusinessHours(t *testing.T) {
	existing := appointment(1, "Ana", 17, 0, 60)

	verdict := NewResolver(domain.DefaultCalendarRules()).Check(candidate(17, 30, 30), []*domain.Appointment{existing})

	assert.True(t, verdict.HasConflict)
	assert.Nil(t, verdict.Suggestion, "18:15 is after closing time")
}

func TestResolver_SuggestionAtClosingIsOmitted(t *testing.T) {
	existing := appointment(1, "Ana", 17, 0, 45)

	verdict := NewResolver(domain.DefaultCalendarRules()).Check(candidate(17, 0, 30), []*domain.Appointment{existing})

	assert.True(t, verdict.HasConflict)
	assert.Nil(t, verdict.Suggestion, "business hours are half-open, 18:00 is closed")
}

func TestResolver_ProximityIsMeasuredBetweenStarts(t *testing.T) {
	existing := []*domain.Appointment{appointment(1, "Ana", 10, 0, 60)}
	resolver := NewResolver(domain.DefaultCalendarRules())

	// 09:40-10:00: начала отличаются на 20 минут, это не меньше порога 15
	verdict := resolver.Check(candidate(9, 40, 20), existing)
	assert.False(t, verdict.HasConflict)
	assert.Empty(t, verdict.Warnings)
	assert.Nil(t, verdict.Suggestion)

	// 09:50-10:00: 10 минут между началами
	verdict = resolver.Check(candidate(9, 50, 10), existing)
	assert.False(t, verdict.HasConflict)
	require.Len(t, verdict.Warnings, 1)
	assert.Contains(t, verdict.Warnings[0], "Ana")
	assert.Contains(t, verdict.Warnings[0], "10:00")
}

func TestResolver_ConfigurableProximity(t *testing.T) {
	rules := domain.DefaultCalendarRules()
	rules.ProximityMinutes = 30

	verdict := NewResolver(rules).Check(candidate(9, 40, 20), []*domain.Appointment{appointment(1, "Ana", 10, 0, 60)})

	assert.False(t, verdict.HasConflict)
	assert.Len(t, verdict.Warnings, 1)
}

func TestResolver_FiltersAppointments(t *testing.T) {
	cancelled := appointment(1, "Ana", 10, 0, 60)
	cancelled.Status = domain.StatusCancelled

	completed := appointment(2, "Bia", 10, 0, 60)
	completed.Status = domain.StatusCompleted

	otherProfessional := appointment(3, "Caio", 10, 0, 60)
	otherProfessional.ProfessionalID = 8

	otherTenant := appointment(4, "Duda", 10, 0, 60)
	otherTenant.TenantID = 2

	verdict := NewResolver(domain.DefaultCalendarRules()).Check(candidate(10, 0, 60),
		[]*domain.Appointment{cancelled, completed, otherProfessional, otherTenant, nil})

	assert.False(t, verdict.HasConflict)
	assert.Empty(t, verdict.Conflicts)
	assert.Empty(t, verdict.Warnings)
}

func TestResolver_EditExcludesItself(t *testing.T) {
	self := appointment(5, "Ana", 10, 0, 60)

	c := candidate(10, 30, 60)
	c.ExcludeAppointmentID = ptr.Ptr(self.ID)

	verdict := NewResolver(domain.DefaultCalendarRules()).Check(c, []*domain.Appointment{self})
	assert.False(t, verdict.HasConflict)

	c.ExcludeAppointmentID = nil
	verdict = NewResolver(domain.DefaultCalendarRules()).Check(c, []*domain.Appointment{self})
	assert.True(t, verdict.HasConflict)
}

func TestResolver_BackToBackIsNotAConflict(t *testing.T) {
	verdict := NewResolver(domain.DefaultCalendarRules()).Check(candidate(11, 0, 30),
		[]*domain.Appointment{appointment(1, "Ana", 10, 0, 60)})

	assert.False(t, verdict.HasConflict)
	assert.True(t, verdict.IsClear())
}

type stubReader struct {
	byDay map[time.Time][]*domain.Appointment
	calls []time.Time
	err   error
}

func (s *stubReader) ListByProfessionalAndDate(_ context.Context, _, _ int64, date time.Time) ([]*domain.Appointment, error) {
	s.calls = append(s.calls, date)
	if s.err != nil {
		return nil, s.err
	}
	return s.byDay[date], nil
}

type stubRules struct {
	rules *domain.CalendarRules
	err   error
}

func (s *stubRules) GetRules(context.Context, int64, int64) (*domain.CalendarRules, error) {
	return s.rules, s.err
}

func TestLocalAndRemoteAgree(t *testing.T) {
	existing := []*domain.Appointment{
		appointment(1, "Ana", 10, 0, 60),
		appointment(2, "Bia", 13, 0, 30),
	}
	rules := domain.DefaultCalendarRules()

	local := NewLocalChecker(rules, existing)
	remote := NewRemoteChecker(&stubReader{byDay: map[time.Time][]*domain.Appointment{day: existing}},
		&stubRules{rules: &rules}, logger.NewNop())

	for _, c := range []Candidate{candidate(10, 30, 60), candidate(12, 50, 10), candidate(15, 0, 60)} {
		fromLocal, err := local.Check(context.Background(), c)
		require.NoError(t, err)

		fromRemote, err := remote.Check(context.Background(), c)
		require.NoError(t, err)

		assert.Equal(t, fromLocal, fromRemote)
	}
}

func TestRemoteChecker_LoadsNextDayForOvernightCandidate(t *testing.T) {
	nextDay := day.AddDate(0, 0, 1)
	overnight := &domain.Appointment{
		ID: 9, TenantID: tenantID, ProfessionalID: professionalID, Status: domain.StatusConfirmed,
		Interval: domain.TimeInterval{Start: nextDay.Add(30 * time.Minute), End: nextDay.Add(90 * time.Minute)},
	}
	reader := &stubReader{byDay: map[time.Time][]*domain.Appointment{nextDay: {overnight}}}
	rules := domain.DefaultCalendarRules()

	checker := NewRemoteChecker(reader, &stubRules{rules: &rules}, logger.NewNop())

	verdict, err := checker.Check(context.Background(), candidate(23, 30, 90))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{day, nextDay}, reader.calls)
	assert.True(t, verdict.HasConflict)
	assert.Nil(t, verdict.Suggestion)
}

func TestRemoteChecker_SingleDayQuery(t *testing.T) {
	reader := &stubReader{}
	rules := domain.DefaultCalendarRules()

	_, err := NewRemoteChecker(reader, &stubRules{rules: &rules}, logger.NewNop()).
		Check(context.Background(), candidate(23, 0, 60))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{day}, reader.calls, "an interval ending at midnight stays within one day")
}

func TestRemoteChecker_Errors(t *testing.T) {
	rules := domain.DefaultCalendarRules()

	_, err := NewRemoteChecker(&stubReader{err: errors.New("connection reset")}, &stubRules{rules: &rules}, logger.NewNop()).
		Check(context.Background(), candidate(10, 0, 30))
	assert.ErrorIs(t, err, ErrRepository)

	_, err = NewRemoteChecker(&stubReader{}, &stubRules{err: errors.New("timeout")}, logger.NewNop()).
		Check(context.Background(), candidate(10, 0, 30))
	assert.ErrorIs(t, err, ErrRepository)

	_, err = NewRemoteChecker(&stubReader{}, &stubRules{rules: &rules}, logger.NewNop()).
		Check(context.Background(), candidate(10, 0, 0))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolver_SameInstantAnyOffset(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	rules := domain.DefaultCalendarRules()
	rules.Location = saoPaulo
	resolver := NewResolver(rules)

	busyFrom := time.Date(2025, 3, 10, 14, 0, 0, 0, saoPaulo)
	// 13:00Z = 10:00 по Сан-Паулу, так запись приходит из хранилища в UTC
	storedUTC := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	existing := []*domain.Appointment{
		{ID: 1, TenantID: tenantID, ProfessionalID: professionalID, ClientName: "Ana", Status: domain.StatusScheduled,
			Interval: domain.TimeInterval{Start: busyFrom, End: busyFrom.Add(time.Hour)}},
		{ID: 2, TenantID: tenantID, ProfessionalID: professionalID, ClientName: "Bia", Status: domain.StatusConfirmed,
			Interval: domain.TimeInterval{Start: storedUTC, End: storedUTC.Add(30 * time.Minute)}},
	}

	tests := []struct {
		name    string
		start   time.Time
		minutes int
	}{
		{name: "conflict with suggestion", start: time.Date(2025, 3, 10, 14, 30, 0, 0, saoPaulo), minutes: 60},
		{name: "proximity warning", start: time.Date(2025, 3, 10, 9, 50, 0, 0, saoPaulo), minutes: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inSalonZone := Candidate{TenantID: tenantID, ProfessionalID: professionalID,
				Interval: domain.TimeInterval{Start: tt.start, End: tt.start.Add(time.Duration(tt.minutes) * time.Minute)}}
			inUTC := inSalonZone
			inUTC.Interval = domain.TimeInterval{Start: tt.start.UTC(), End: inSalonZone.Interval.End.UTC()}

			fromSalonZone := resolver.Check(inSalonZone, existing)
			fromUTC := resolver.Check(inUTC, existing)

			assert.Equal(t, fromSalonZone, fromUTC)
		})
	}

	verdict := resolver.Check(Candidate{TenantID: tenantID, ProfessionalID: professionalID,
		Interval: domain.TimeInterval{Start: time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC), End: time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)}},
		existing)
	require.NotNil(t, verdict.Suggestion)
	assert.Equal(t, "15:15", verdict.Suggestion.Format(domain.TimeFormat))
	assert.Equal(t, saoPaulo, verdict.Suggestion.Location())

	warned := resolver.Check(Candidate{TenantID: tenantID, ProfessionalID: professionalID,
		Interval: domain.TimeInterval{Start: time.Date(2025, 3, 10, 12, 50, 0, 0, time.UTC), End: time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)}},
		existing)
	require.Len(t, warned.Warnings, 1)
	assert.Contains(t, warned.Warnings[0], "Bia's appointment at 10:00")
}

func TestRemoteChecker_UsesSalonDay(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	salonDay := time.Date(2025, 3, 10, 0, 0, 0, 0, saoPaulo)
	evening := time.Date(2025, 3, 10, 21, 0, 0, 0, saoPaulo)
	reader := &stubReader{byDay: map[time.Time][]*domain.Appointment{salonDay: {{
		ID: 4, TenantID: tenantID, ProfessionalID: professionalID, Status: domain.StatusScheduled,
		Interval: domain.TimeInterval{Start: evening, End: evening.Add(time.Hour)},
	}}}}

	rules := domain.DefaultCalendarRules()
	rules.Location = saoPaulo
	checker := NewRemoteChecker(reader, &stubRules{rules: &rules}, logger.NewNop())

	// 00:30Z 11 марта = 21:30 10 марта по Сан-Паулу
	startUTC := time.Date(2025, 3, 11, 0, 30, 0, 0, time.UTC)
	verdict, err := checker.Check(context.Background(), Candidate{TenantID: tenantID, ProfessionalID: professionalID,
		Interval: domain.TimeInterval{Start: startUTC, End: startUTC.Add(30 * time.Minute)}})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{salonDay}, reader.calls)
	assert.True(t, verdict.HasConflict)
	assert.Equal(t, []int64{4}, verdict.ConflictIDs())
}
