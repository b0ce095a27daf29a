package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// MemoryRepository хранилище записей в памяти процесса.
// Проверка пересечения и вставка выполняются под одной блокировкой,
// поэтому две пересекающиеся записи не могут быть сохранены
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*domain.Appointment
	now    func() time.Time
}

// NewMemoryRepository создает пустое хранилище записей
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[int64]*domain.Appointment),
		now:   time.Now,
	}
}

// ListByProfessionalAndDate возвращает активные записи специалиста, пересекающие сутки date
func (r *MemoryRepository) ListByProfessionalAndDate(_ context.Context, tenantID, professionalID int64, date time.Time) ([]*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bounds := domain.DayBounds(date)
	result := make([]*domain.Appointment, 0)
	for _, a := range r.items {
		if a.TenantID != tenantID || a.ProfessionalID != professionalID || !a.IsActive() {
			continue
		}
		if domain.Overlaps(a.Interval, bounds) {
			result = append(result, a.Clone())
		}
	}

	sortByStart(result)
	return result, nil
}

// CreateIfNoConflict сохраняет запись, если её интервал свободен
func (r *MemoryRepository) CreateIfNoConflict(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.Status.IsActive() && r.overlapsLocked(a, 0) {
		return nil, ErrOverlap
	}

	r.nextID++
	created := a.Clone()
	created.ID = r.nextID
	created.CreatedAt = r.now()
	created.UpdatedAt = created.CreatedAt

	r.items[created.ID] = created
	return created.Clone(), nil
}

// RescheduleIfNoConflict изменяет активную запись, если новый интервал свободен
func (r *MemoryRepository) RescheduleIfNoConflict(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[a.ID]
	if !ok || current.TenantID != a.TenantID || !current.IsActive() {
		return nil, ErrAppointmentNotFound
	}

	if r.overlapsLocked(a, a.ID) {
		return nil, ErrOverlap
	}

	updated := a.Clone()
	updated.Status = current.Status
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = r.now()

	r.items[updated.ID] = updated
	return updated.Clone(), nil
}

// UpdateStatus переводит запись из from в to, только если текущий статус равен from
func (r *MemoryRepository) UpdateStatus(_ context.Context, tenantID, id int64, from, to domain.BookingStatus) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok || current.TenantID != tenantID {
		return nil, ErrAppointmentNotFound
	}
	if current.Status != from {
		return nil, ErrStatusMismatch
	}

	current.Status = to
	current.UpdatedAt = r.now()
	return current.Clone(), nil
}

// GetByID получает запись по ID в рамках арендатора
func (r *MemoryRepository) GetByID(_ context.Context, tenantID, id int64) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok || a.TenantID != tenantID {
		return nil, ErrAppointmentNotFound
	}
	return a.Clone(), nil
}

// List получает записи по фильтру, отсортированные по времени начала
func (r *MemoryRepository) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range r.items {
		if filter.Matches(a) {
			result = append(result, a.Clone())
		}
	}

	sortByStart(result)
	return result, nil
}

// overlapsLocked проверяет пересечение с активными записями специалиста, кроме excludeID.
// Вызывается под r.mu
func (r *MemoryRepository) overlapsLocked(a *domain.Appointment, excludeID int64) bool {
	for id, existing := range r.items {
		if id == excludeID || !existing.IsActive() {
			continue
		}
		if existing.TenantID != a.TenantID || existing.ProfessionalID != a.ProfessionalID {
			continue
		}
		if domain.Overlaps(existing.Interval, a.Interval) {
			return true
		}
	}
	return false
}

func sortByStart(appointments []*domain.Appointment) {
	sort.Slice(appointments, func(i, j int) bool {
		if appointments[i].Interval.Start.Equal(appointments[j].Interval.Start) {
			return appointments[i].ID < appointments[j].ID
		}
		return appointments[i].Interval.Start.Before(appointments[j].Interval.Start)
	})
}
