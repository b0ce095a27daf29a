package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusScheduled, StatusScheduled, false},
		{StatusConfirmed, StatusScheduled, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusScheduled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))

			err := Transition(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTransition))

			var transitionErr *InvalidTransitionError
			require.True(t, errors.As(err, &transitionErr))
			assert.Equal(t, tt.from, transitionErr.From)
			assert.Equal(t, tt.to, transitionErr.To)
		})
	}
}

func TestTransition_UnknownTarget(t *testing.T) {
	err := Transition(StatusScheduled, BookingStatus("archived"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, errors.Is(err, ErrInvalidTransition))
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	for _, s := range TerminalStatuses {
		assert.True(t, s.IsTerminal())
		assert.False(t, s.IsActive())
		assert.Empty(t, AllowedTransitions(s))
	}
	assert.ElementsMatch(t, []BookingStatus{StatusConfirmed, StatusCancelled}, AllowedTransitions(StatusScheduled))
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseBookingStatus("Confirmed")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseBookingStatus("")
	assert.ErrorIs(t, err, ErrValidation)
}
