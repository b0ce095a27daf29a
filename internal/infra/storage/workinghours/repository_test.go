package workinghours

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/pkg/dbmetrics"
	"github.com/ddduartediego/BelloProject-sub000/pkg/ptr"
	"github.com/ddduartediego/BelloProject-sub000/pkg/types"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_GetByWeekday(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM working_hours WHERE tenant_id = $1 AND professional_id = $2 AND weekday = $3")).
		WithArgs(int64(1), int64(7), int64(time.Monday)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), int64(7), int64(1), "08:00:00", "18:00:00", "12:00:00", "13:00:00"))

	wh, err := repo.GetByWeekday(context.Background(), 1, 7, time.Monday)
	require.NoError(t, err)

	assert.Equal(t, time.Monday, wh.Weekday)
	assert.Equal(t, types.TimeString("08:00"), wh.Start)
	require.True(t, wh.HasBreak())
	assert.Equal(t, types.TimeString("13:00"), *wh.BreakEnd)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByWeekday_DayOff(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM working_hours")).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByWeekday(context.Background(), 1, 7, time.Sunday)
	assert.ErrorIs(t, err, ErrNotWorking)
}

func TestRepository_ListByProfessional_NoBreak(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY weekday ASC")).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), int64(7), int64(1), "08:00:00", "18:00:00", nil, nil).
			AddRow(int64(1), int64(7), int64(2), "10:00:00", "16:00:00", nil, nil))

	schedule, err := repo.ListByProfessional(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.False(t, schedule[0].HasBreak())
	assert.Equal(t, time.Tuesday, schedule[1].Weekday)
}

func TestRepository_ReplaceWeek(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM working_hours WHERE tenant_id = $1 AND professional_id = $2")).
		WithArgs(int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO working_hours")).
		WithArgs(
			int64(1), int64(7), int64(1), "08:00", "18:00", "12:00", "13:00",
			int64(1), int64(7), int64(2), "10:00", "16:00", nil, nil,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.ReplaceWeek(context.Background(), 1, 7, domain.WeeklySchedule{
		{Weekday: time.Monday, Start: "08:00", End: "18:00",
			BreakStart: ptr.Ptr(types.TimeString("12:00")), BreakEnd: ptr.Ptr(types.TimeString("13:00"))},
		{Weekday: time.Tuesday, Start: "10:00", End: "16:00"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.GetByWeekday(ctx, 1, 7, time.Monday)
	assert.ErrorIs(t, err, ErrNotWorking)

	require.NoError(t, repo.ReplaceWeek(ctx, 1, 7, domain.WeeklySchedule{
		{Weekday: time.Friday, Start: "09:00", End: "17:00"},
		{Weekday: time.Monday, Start: "08:00", End: "18:00"},
	}))

	wh, err := repo.GetByWeekday(ctx, 1, 7, time.Monday)
	require.NoError(t, err)
	assert.Equal(t, int64(7), wh.ProfessionalID)

	schedule, err := repo.ListByProfessional(ctx, 1, 7)
	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.Equal(t, time.Monday, schedule[0].Weekday)

	_, err = repo.GetByWeekday(ctx, 2, 7, time.Monday)
	assert.ErrorIs(t, err, ErrNotWorking)
}
