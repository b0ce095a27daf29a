package catalog

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/pkg/dbmetrics"
)

func TestRepository_GetService(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))

	mock.ExpectQuery(regexp.QuoteMeta("FROM services WHERE id = $1 AND tenant_id = $2 AND active = $3")).
		WithArgs(int64(3), int64(1), true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "duration_minutes", "active"}).
			AddRow(int64(3), int64(1), "Corte", 45, true))

	s, err := repo.GetService(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 45, s.DurationMinutes)

	mock.ExpectQuery(regexp.QuoteMeta("FROM professionals")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "active"}))

	_, err = repo.GetProfessional(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	repo.AddProfessional(domain.Professional{ID: 7, TenantID: 1, Name: "Joana", Active: true})
	repo.AddService(domain.Service{ID: 3, TenantID: 1, Name: "Corte", DurationMinutes: 45, Active: true})
	repo.AddService(domain.Service{ID: 4, TenantID: 1, Name: "Barba", DurationMinutes: 30})

	p, err := repo.GetProfessional(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "Joana", p.Name)

	_, err = repo.GetProfessional(ctx, 2, 7)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)

	_, err = repo.GetService(ctx, 1, 4)
	assert.ErrorIs(t, err, ErrServiceNotFound, "inactive service")
}
