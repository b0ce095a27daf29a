package rules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/pkg/dbmetrics"
	"github.com/ddduartediego/BelloProject-sub000/pkg/psqlbuilder"
)

const table = "schedule_rules"

var columns = []string{
	"id",
	"tenant_id",
	"professional_id",
	"granularity_minutes",
	"proximity_minutes",
	"suggestion_buffer_minutes",
	"business_open",
	"business_close",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenantAndProfessional получает правила ровно одного уровня:
// professionalID != nil - правила специалиста, nil - правила арендатора
func (r *Repository) GetByTenantAndProfessional(ctx context.Context, tenantID int64, professionalID *int64) (*domain.CalendarRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"tenant_id": tenantID})

	// Фильтрация по professional_id (NULL или конкретное значение)
	if professionalID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *professionalID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndProfessional - build select query: %v", ErrBuildQuery, err)
	}

	var rules domain.CalendarRules
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rules.ID,
		&rules.TenantID,
		&rules.ProfessionalID,
		&rules.GranularityMinutes,
		&rules.ProximityMinutes,
		&rules.SuggestionBufferMinutes,
		&rules.BusinessOpen,
		&rules.BusinessClose,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRulesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndProfessional - scan rules: %v", ErrScanRow, err)
	}

	rules.CreatedAt = createdAt.Time
	rules.UpdatedAt = updatedAt.Time

	return &rules, nil
}

// GetRulesWithHierarchy получает правила с учетом иерархии приоритетов:
// 1. Правила конкретного специалиста (tenantID, professionalID)
// 2. Правила арендатора (tenantID, NULL)
//
// Если правила не найдены ни на одном уровне, возвращает ErrRulesNotFound
func (r *Repository) GetRulesWithHierarchy(ctx context.Context, tenantID, professionalID int64) (*domain.CalendarRules, error) {
	// 1. Правила специалиста
	rules, err := r.GetByTenantAndProfessional(ctx, tenantID, &professionalID)
	if err == nil {
		return rules, nil
	}
	if !errors.Is(err, ErrRulesNotFound) {
		return nil, fmt.Errorf("%w: GetRulesWithHierarchy - level 1 (professional): %v", ErrExecQuery, err)
	}

	// 2. Правила арендатора
	rules, err = r.GetByTenantAndProfessional(ctx, tenantID, nil)
	if err == nil {
		return rules, nil
	}
	if !errors.Is(err, ErrRulesNotFound) {
		return nil, fmt.Errorf("%w: GetRulesWithHierarchy - level 2 (tenant): %v", ErrExecQuery, err)
	}

	return nil, ErrRulesNotFound
}

// Upsert создает или обновляет правила уровня (tenant_id, professional_id).
// Уникальность обеспечивает индекс по (tenant_id, COALESCE(professional_id, 0))
func (r *Repository) Upsert(ctx context.Context, rules *domain.CalendarRules) (*domain.CalendarRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"tenant_id",
			"professional_id",
			"granularity_minutes",
			"proximity_minutes",
			"suggestion_buffer_minutes",
			"business_open",
			"business_close",
		).
		Values(
			rules.TenantID,
			rules.ProfessionalID,
			rules.GranularityMinutes,
			rules.ProximityMinutes,
			rules.SuggestionBufferMinutes,
			rules.BusinessOpen,
			rules.BusinessClose,
		).
		Suffix(`ON CONFLICT (tenant_id, COALESCE(professional_id, 0)) DO UPDATE SET
			granularity_minutes = EXCLUDED.granularity_minutes,
			proximity_minutes = EXCLUDED.proximity_minutes,
			suggestion_buffer_minutes = EXCLUDED.suggestion_buffer_minutes,
			business_open = EXCLUDED.business_open,
			business_close = EXCLUDED.business_close,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	saved := *rules
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	saved.CreatedAt = createdAt.Time
	saved.UpdatedAt = updatedAt.Time

	return &saved, nil
}

// Delete удаляет правила одного уровня, после чего действует следующий уровень иерархии
func (r *Repository) Delete(ctx context.Context, tenantID int64, professionalID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"tenant_id": tenantID})

	if professionalID == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"professional_id": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"professional_id": *professionalID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRulesNotFound
	}

	return nil
}
