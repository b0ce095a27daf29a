package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddduartediego/BelloProject-sub000/pkg/ptr"
	"github.com/ddduartediego/BelloProject-sub000/pkg/types"
)

func TestWorkingHours_Validate(t *testing.T) {
	tests := []struct {
		name    string
		wh      WorkingHours
		wantErr bool
	}{
		{
			name: "no break",
			wh:   WorkingHours{Weekday: time.Monday, Start: "08:00", End: "18:00"},
		},
		{
			name: "break inside",
			wh: WorkingHours{Weekday: time.Monday, Start: "08:00", End: "18:00",
				BreakStart: ptr.Ptr(types.TimeString("12:00")), BreakEnd: ptr.Ptr(types.TimeString("13:00"))},
		},
		{
			name:    "start after end",
			wh:      WorkingHours{Weekday: time.Monday, Start: "18:00", End: "08:00"},
			wantErr: true,
		},
		{
			name: "break outside",
			wh: WorkingHours{Weekday: time.Monday, Start: "08:00", End: "18:00",
				BreakStart: ptr.Ptr(types.TimeString("17:30")), BreakEnd: ptr.Ptr(types.TimeString("18:30"))},
			wantErr: true,
		},
		{
			name: "half break",
			wh: WorkingHours{Weekday: time.Monday, Start: "08:00", End: "18:00",
				BreakStart: ptr.Ptr(types.TimeString("12:00"))},
			wantErr: true,
		},
		{
			name:    "bad format",
			wh:      WorkingHours{Weekday: time.Monday, Start: "8am", End: "18:00"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wh.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorkingHours_WindowAndBreakOn(t *testing.T) {
	wh := WorkingHours{Weekday: time.Monday, Start: "08:00", End: "18:00",
		BreakStart: ptr.Ptr(types.TimeString("12:00")), BreakEnd: ptr.Ptr(types.TimeString("13:00"))}

	window, err := wh.WindowOn(at(0, 0))
	require.NoError(t, err)
	assert.Equal(t, at(8, 0), window.Start)
	assert.Equal(t, at(18, 0), window.End)

	br, err := wh.BreakOn(at(0, 0))
	require.NoError(t, err)
	require.NotNil(t, br)
	assert.Equal(t, at(12, 0), br.Start)
	assert.Equal(t, at(13, 0), br.End)

	wh.BreakStart, wh.BreakEnd = nil, nil
	br, err = wh.BreakOn(at(0, 0))
	require.NoError(t, err)
	assert.Nil(t, br)
}

func TestWeeklySchedule(t *testing.T) {
	schedule := WeeklySchedule{
		{Weekday: time.Monday, Start: "08:00", End: "18:00"},
		{Weekday: time.Tuesday, Start: "10:00", End: "16:00"},
	}
	require.NoError(t, schedule.Validate())

	assert.NotNil(t, schedule.ForWeekday(time.Tuesday))
	assert.Nil(t, schedule.ForWeekday(time.Sunday))

	schedule = append(schedule, WorkingHours{Weekday: time.Monday, Start: "09:00", End: "10:00"})
	assert.ErrorIs(t, schedule.Validate(), ErrValidation)
}

func TestCalendarRules(t *testing.T) {
	rules := DefaultCalendarRules()
	require.NoError(t, rules.Validate())
	assert.True(t, rules.IsDefault())
	assert.True(t, rules.IsTenantWide())
	assert.Equal(t, 15*time.Minute, rules.ProximityThreshold())

	hours, err := rules.BusinessHoursOn(at(0, 0))
	require.NoError(t, err)
	assert.Equal(t, at(8, 0), hours.Start)
	assert.Equal(t, at(18, 0), hours.End)

	rules.GranularityMinutes = 20
	assert.ErrorIs(t, rules.Validate(), ErrValidation)

	rules = DefaultCalendarRules()
	rules.BusinessOpen, rules.BusinessClose = "18:00", "08:00"
	assert.ErrorIs(t, rules.Validate(), ErrValidation)

	rules = DefaultCalendarRules()
	rules.ProximityMinutes = -1
	assert.ErrorIs(t, rules.Validate(), ErrValidation)
}

func TestCalendarRules_In(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	instant := time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)

	rules := DefaultCalendarRules()
	assert.Equal(t, time.UTC, rules.In(instant).Location(), "no zone keeps the input")

	rules.Location = saoPaulo
	local := rules.In(instant)
	assert.True(t, local.Equal(instant))
	assert.Equal(t, "14:30", local.Format(TimeFormat))
}

func TestAppointmentDraft_Validate(t *testing.T) {
	draft := AppointmentDraft{
		TenantID: 1, ProfessionalID: 2, ClientID: 3, ServiceID: 4,
		Interval: span(10, 0, 10, 30),
	}
	require.NoError(t, draft.Validate())
	assert.False(t, draft.IsEdit())

	draft.AppointmentID = ptr.Ptr(int64(7))
	assert.True(t, draft.IsEdit())

	bad := draft
	bad.Interval = span(10, 0, 10, 0)
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	bad = draft
	bad.ProfessionalID = 0
	assert.ErrorIs(t, bad.Validate(), ErrValidation)
}

func TestAppointmentFilter_Matches(t *testing.T) {
	a := &Appointment{TenantID: 1, ProfessionalID: 2, ClientID: 4, Interval: span(10, 0, 11, 0), Status: StatusScheduled}

	day := DayBounds(at(0, 0))
	filter := AppointmentFilter{TenantID: 1, ProfessionalID: ptr.Ptr(int64(2)), From: &day.Start, To: &day.End}
	assert.True(t, filter.Matches(a))

	filter.Statuses = []BookingStatus{StatusCancelled}
	assert.False(t, filter.Matches(a))

	filter.Statuses = nil
	filter.ClientID = ptr.Ptr(int64(5))
	assert.False(t, filter.Matches(a))

	filter.ClientID = ptr.Ptr(int64(4))
	assert.True(t, filter.Matches(a))

	filter.TenantID = 9
	assert.False(t, filter.Matches(a))
}

func TestConflictError(t *testing.T) {
	verdict := &ConflictVerdict{Conflicts: []*Appointment{{ID: 5}}}
	err := NewConflictError(verdict)

	assert.ErrorIs(t, err, ErrConflict)
	assert.True(t, err.Verdict.HasConflict)
	assert.Equal(t, []int64{5}, err.Verdict.ConflictIDs())
	assert.Contains(t, err.Error(), "1 conflicting")
}
