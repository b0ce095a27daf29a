package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/pkg/dbmetrics"
	"github.com/ddduartediego/BelloProject-sub000/pkg/psqlbuilder"
)

const table = "appointments"

// Коды ошибок Postgres
const (
	pqExclusionViolation   pq.ErrorCode = "23P01"
	pqSerializationFailure pq.ErrorCode = "40001"
)

var columns = []string{
	"id",
	"tenant_id",
	"professional_id",
	"client_id",
	"service_id",
	"client_name",
	"service_name",
	"starts_at",
	"ends_at",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей в PostgreSQL.
// Пересечения активных записей отсекает ограничение EXCLUDE USING gist
// на (tenant_id, professional_id, tstzrange(starts_at, ends_at, '[)'))
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByProfessionalAndDate возвращает активные записи специалиста, интервал которых
// пересекает сутки date. Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) ListByProfessionalAndDate(ctx context.Context, tenantID, professionalID int64, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	bounds := domain.DayBounds(date)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"starts_at": bounds.End}).
		Where(squirrel.Gt{"ends_at": bounds.Start}).
		OrderBy("starts_at ASC")

	// В транзакции гейткипера блокируем строки дня специалиста
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessionalAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProfessionalAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// CreateIfNoConflict сохраняет новую запись.
// Если интервал пересекается с активной записью специалиста, возвращает ErrOverlap
func (r *Repository) CreateIfNoConflict(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"tenant_id",
			"professional_id",
			"client_id",
			"service_id",
			"client_name",
			"service_name",
			"starts_at",
			"ends_at",
			"status",
			"notes",
		).
		Values(
			a.TenantID,
			a.ProfessionalID,
			a.ClientID,
			a.ServiceID,
			a.ClientName,
			a.ServiceName,
			a.Interval.Start,
			a.Interval.End,
			a.Status,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfNoConflict - build insert query: %v", ErrBuildQuery, err)
	}

	created := a.Clone()
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &createdAt, &updatedAt)
	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: CreateIfNoConflict - execute insert: %v", ErrExecQuery, err)
	}

	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return created, nil
}

// RescheduleIfNoConflict изменяет интервал и реквизиты активной записи.
// Статус не меняется. Терминальные записи не редактируются (ErrAppointmentNotFound)
func (r *Repository) RescheduleIfNoConflict(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("professional_id", a.ProfessionalID).
		Set("client_id", a.ClientID).
		Set("service_id", a.ServiceID).
		Set("client_name", a.ClientName).
		Set("service_name", a.ServiceName).
		Set("starts_at", a.Interval.Start).
		Set("ends_at", a.Interval.End).
		Set("notes", a.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Where(squirrel.Eq{"tenant_id": a.TenantID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Suffix("RETURNING status, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RescheduleIfNoConflict - build update query: %v", ErrBuildQuery, err)
	}

	updated := a.Clone()
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updated.Status, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: RescheduleIfNoConflict - execute update: %v", ErrExecQuery, err)
	}

	updated.CreatedAt = createdAt.Time
	updated.UpdatedAt = updatedAt.Time

	return updated, nil
}

// UpdateStatus переводит запись из статуса from в статус to (compare-and-set).
// Если текущий статус уже не from, возвращает ErrStatusMismatch
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, id int64, from, to domain.BookingStatus) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"status": from}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStatusMismatch
	}
	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return a, nil
}

// GetByID получает запись по ID в рамках арендатора
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return a, nil
}

// List получает записи арендатора с фильтрацией по специалисту, клиенту, периоду и статусам.
// Период задаётся по времени начала: From <= starts_at < To
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"starts_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"starts_at": *filter.To})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}

	query, args, err := selectBuilder.OrderBy("starts_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.TenantID,
		&a.ProfessionalID,
		&a.ClientID,
		&a.ServiceID,
		&a.ClientName,
		&a.ServiceName,
		&a.Interval.Start,
		&a.Interval.End,
		&a.Status,
		&a.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// mapPQError переводит коды Postgres в ошибки репозитория, nil - код не распознан
func mapPQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case pqExclusionViolation:
		return fmt.Errorf("%w: %s", ErrOverlap, pqErr.Constraint)
	case pqSerializationFailure:
		return fmt.Errorf("%w: %s", ErrSerialization, pqErr.Message)
	default:
		return nil
	}
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
