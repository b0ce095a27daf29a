package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/appointment"
	"github.com/ddduartediego/BelloProject-sub000/internal/service/appointments/models"
	"github.com/ddduartediego/BelloProject-sub000/pkg/logger"
	"github.com/ddduartediego/BelloProject-sub000/pkg/ptr"
)

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo *appointment.MemoryRepository, professionalID int64, day time.Time, hour int, status domain.BookingStatus) *domain.Appointment {
	t.Helper()

	start := day.Add(time.Duration(hour) * time.Hour)
	created, err := repo.CreateIfNoConflict(context.Background(), &domain.Appointment{
		TenantID:       1,
		ProfessionalID: professionalID,
		ClientID:       3,
		ServiceID:      4,
		ClientName:     "Ana",
		Interval:       domain.TimeInterval{Start: start, End: start.Add(45 * time.Minute)},
		Status:         status,
	})
	require.NoError(t, err)
	return created
}

func TestService_GetByID(t *testing.T) {
	repo := appointment.NewMemoryRepository()
	svc := NewService(repo, logger.NewNop())
	a := seed(t, repo, 7, monday, 10, domain.StatusScheduled)

	got, err := svc.GetByID(context.Background(), 1, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, 45, got.DurationMinutes)
	assert.Equal(t, "scheduled", got.Status)

	_, err = svc.GetByID(context.Background(), 2, a.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_List(t *testing.T) {
	repo := appointment.NewMemoryRepository()
	svc := NewService(repo, logger.NewNop())

	late := seed(t, repo, 7, monday, 15, domain.StatusScheduled)
	early := seed(t, repo, 7, monday, 9, domain.StatusCancelled)
	seed(t, repo, 8, monday, 9, domain.StatusScheduled)
	seed(t, repo, 7, monday.AddDate(0, 0, 1), 9, domain.StatusScheduled)

	tests := []struct {
		name    string
		req     *models.ListRequest
		wantIDs []int64
	}{
		{
			name:    "one professional, one day, ordered by start",
			req:     &models.ListRequest{TenantID: 1, ProfessionalID: ptr.Ptr(int64(7)), Date: &monday},
			wantIDs: []int64{early.ID, late.ID},
		},
		{
			name:    "status filter",
			req:     &models.ListRequest{TenantID: 1, ProfessionalID: ptr.Ptr(int64(7)), Date: &monday, Statuses: []string{"scheduled", "confirmed"}},
			wantIDs: []int64{late.ID},
		},
		{
			name:    "other tenant sees nothing",
			req:     &models.ListRequest{TenantID: 2},
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.List(context.Background(), tt.req)
			require.NoError(t, err)

			ids := make([]int64, 0, len(resp.Appointments))
			for _, a := range resp.Appointments {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestService_List_InvalidInput(t *testing.T) {
	svc := NewService(appointment.NewMemoryRepository(), logger.NewNop())

	_, err := svc.List(context.Background(), &models.ListRequest{TenantID: 1, Statuses: []string{"pending"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	to := monday
	from := monday.Add(time.Hour)
	_, err = svc.List(context.Background(), &models.ListRequest{TenantID: 1, From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
