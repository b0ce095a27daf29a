package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func span(startH, startM, endH, endM int) TimeInterval {
	return TimeInterval{Start: at(startH, startM), End: at(endH, endM)}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeInterval
		b    TimeInterval
		want bool
	}{
		{"partial overlap", span(10, 0, 11, 0), span(10, 30, 11, 30), true},
		{"contained", span(9, 0, 12, 0), span(10, 0, 10, 30), true},
		{"identical", span(10, 0, 11, 0), span(10, 0, 11, 0), true},
		{"back to back", span(10, 0, 10, 30), span(10, 30, 11, 0), false},
		{"disjoint", span(8, 0, 9, 0), span(15, 0, 16, 0), false},
		{"zero length", span(10, 0, 10, 0), span(9, 0, 11, 0), false},
		{"inverted", span(11, 0, 10, 0), span(9, 0, 12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestOverlaps_SelfOverlap(t *testing.T) {
	for _, i := range []TimeInterval{span(8, 0, 8, 5), span(10, 0, 18, 0)} {
		assert.True(t, Overlaps(i, i))
	}
}

func TestProximityMinutes(t *testing.T) {
	assert.Equal(t, 20.0, ProximityMinutes(span(9, 40, 10, 0), span(10, 0, 10, 30)))
	assert.Equal(t, 20.0, ProximityMinutes(span(10, 0, 10, 30), span(9, 40, 10, 0)))
	assert.Equal(t, 0.0, ProximityMinutes(span(10, 0, 10, 30), span(10, 0, 11, 0)))
}

func TestNewInterval(t *testing.T) {
	i, err := NewInterval(at(10, 30), 45)
	require.NoError(t, err)
	assert.Equal(t, at(11, 15), i.End)
	assert.Equal(t, 45*time.Minute, i.Duration())

	_, err = NewInterval(at(10, 30), 0)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = NewInterval(at(10, 30), -15)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestTimeInterval_Validate(t *testing.T) {
	assert.NoError(t, span(10, 0, 10, 5).Validate())
	assert.ErrorIs(t, span(10, 0, 10, 0).Validate(), ErrValidation)
	assert.ErrorIs(t, span(10, 0, 9, 0).Validate(), ErrValidation)
	assert.ErrorIs(t, TimeInterval{}.Validate(), ErrValidation)
}

func TestTimeInterval_Contains(t *testing.T) {
	i := span(10, 0, 11, 0)
	assert.True(t, i.Contains(at(10, 0)))
	assert.True(t, i.Contains(at(10, 59)))
	assert.False(t, i.Contains(at(11, 0)))
	assert.False(t, i.Contains(at(9, 59)))
}

func TestDayBounds(t *testing.T) {
	day := DayBounds(at(15, 45))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), day.Start)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), day.End)
}
