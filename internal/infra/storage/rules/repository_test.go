package rules

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/pkg/dbmetrics"
	"github.com/ddduartediego/BelloProject-sub000/pkg/ptr"
)

const (
	professionalQuery = "FROM schedule_rules WHERE tenant_id = $1 AND professional_id = $2"
	tenantQuery       = "FROM schedule_rules WHERE tenant_id = $1 AND professional_id IS NULL"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func rulesRow(id int64, professionalID interface{}, proximity int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(columns).
		AddRow(id, int64(1), professionalID, 30, proximity, 15, "08:00:00", "18:00:00", now, now)
}

func TestRepository_GetRulesWithHierarchy_ProfessionalLevel(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(professionalQuery)).
		WithArgs(int64(1), int64(7)).
		WillReturnRows(rulesRow(3, int64(7), 20))

	rules, err := repo.GetRulesWithHierarchy(context.Background(), 1, 7)
	require.NoError(t, err)

	assert.Equal(t, int64(3), rules.ID)
	assert.True(t, rules.IsProfessionalSpecific())
	assert.Equal(t, 20, rules.ProximityMinutes)
	assert.Equal(t, "08:00", rules.BusinessOpen.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetRulesWithHierarchy_FallsBackToTenant(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(professionalQuery)).
		WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectQuery(regexp.QuoteMeta(tenantQuery)).
		WithArgs(int64(1)).
		WillReturnRows(rulesRow(1, nil, 15))

	rules, err := repo.GetRulesWithHierarchy(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.True(t, rules.IsTenantWide())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetRulesWithHierarchy_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(professionalQuery)).WillReturnRows(sqlmock.NewRows(columns))
	mock.ExpectQuery(regexp.QuoteMeta(tenantQuery)).WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetRulesWithHierarchy(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrRulesNotFound)
}

func TestRepository_GetRulesWithHierarchy_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(professionalQuery)).WillReturnError(errors.New("connection refused"))

	_, err := repo.GetRulesWithHierarchy(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrRulesNotFound)
}

func TestRepository_Upsert(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO schedule_rules")).
		WithArgs(int64(1), int64(7), 15, 10, 20, "09:00", "19:00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	saved, err := repo.Upsert(context.Background(), &domain.CalendarRules{
		TenantID:                1,
		ProfessionalID:          ptr.Ptr(int64(7)),
		GranularityMinutes:      15,
		ProximityMinutes:        10,
		SuggestionBufferMinutes: 20,
		BusinessOpen:            "09:00",
		BusinessClose:           "19:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepository_Hierarchy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.GetRulesWithHierarchy(ctx, 1, 7)
	assert.ErrorIs(t, err, ErrRulesNotFound)

	tenantRules := domain.DefaultCalendarRules()
	tenantRules.TenantID = 1
	_, err = repo.Upsert(ctx, &tenantRules)
	require.NoError(t, err)

	rules, err := repo.GetRulesWithHierarchy(ctx, 1, 7)
	require.NoError(t, err)
	assert.True(t, rules.IsTenantWide())

	professionalRules := domain.DefaultCalendarRules()
	professionalRules.TenantID = 1
	professionalRules.ProfessionalID = ptr.Ptr(int64(7))
	professionalRules.ProximityMinutes = 5
	first, err := repo.Upsert(ctx, &professionalRules)
	require.NoError(t, err)

	rules, err = repo.GetRulesWithHierarchy(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 5, rules.ProximityMinutes)

	professionalRules.ProximityMinutes = 25
	second, err := repo.Upsert(ctx, &professionalRules)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "upsert keeps the same row")

	require.NoError(t, repo.Delete(ctx, 1, ptr.Ptr(int64(7))))
	rules, err = repo.GetRulesWithHierarchy(ctx, 1, 7)
	require.NoError(t, err)
	assert.True(t, rules.IsTenantWide())
}
