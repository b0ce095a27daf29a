package workinghours

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/pkg/dbmetrics"
	"github.com/ddduartediego/BelloProject-sub000/pkg/psqlbuilder"
)

const table = "working_hours"

var columns = []string{
	"tenant_id",
	"professional_id",
	"weekday",
	"start_time",
	"end_time",
	"break_start",
	"break_end",
}

// Repository репозиторий рабочих часов специалистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByWeekday получает рабочие часы специалиста на день недели.
// Если строки нет, специалист в этот день не работает (ErrNotWorking)
func (r *Repository) GetByWeekday(ctx context.Context, tenantID, professionalID int64, weekday time.Weekday) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	wh, err := scanWorkingHours(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNotWorking
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - scan working hours: %v", ErrScanRow, err)
	}

	return wh, nil
}

// ListByProfessional получает недельное расписание специалиста
func (r *Repository) ListByProfessional(ctx context.Context, tenantID, professionalID int64) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := make(domain.WeeklySchedule, 0, 7)
	for rows.Next() {
		wh, err := scanWorkingHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProfessional - scan row: %v", ErrScanRow, err)
		}
		schedule = append(schedule, *wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProfessional - rows error: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// ReplaceWeek заменяет недельное расписание специалиста целиком.
// Должен вызываться внутри транзакции, иначе возможно частичное состояние
func (r *Repository) ReplaceWeek(ctx context.Context, tenantID, professionalID int64, schedule domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// 1. Удаляем текущее расписание
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - execute delete: %v", ErrExecQuery, err)
	}

	if len(schedule) == 0 {
		return nil
	}

	// 2. Вставляем новое расписание одним запросом
	insertBuilder := psqlbuilder.Insert(table).Columns(columns...)
	for _, wh := range schedule {
		insertBuilder = insertBuilder.Values(
			tenantID,
			professionalID,
			int(wh.Weekday),
			wh.Start,
			wh.End,
			wh.BreakStart,
			wh.BreakEnd,
		)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkingHours(row rowScanner) (*domain.WorkingHours, error) {
	var wh domain.WorkingHours
	var weekday int

	err := row.Scan(
		&wh.TenantID,
		&wh.ProfessionalID,
		&weekday,
		&wh.Start,
		&wh.End,
		&wh.BreakStart,
		&wh.BreakEnd,
	)
	if err != nil {
		return nil, err
	}

	wh.Weekday = time.Weekday(weekday)
	return &wh, nil
}
