package workinghours

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

type memoryKey struct {
	tenantID       int64
	professionalID int64
}

// MemoryRepository рабочие часы в памяти процесса
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[memoryKey]domain.WeeklySchedule
}

// NewMemoryRepository создает пустое хранилище рабочих часов
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[memoryKey]domain.WeeklySchedule)}
}

// GetByWeekday получает рабочие часы специалиста на день недели
func (r *MemoryRepository) GetByWeekday(_ context.Context, tenantID, professionalID int64, weekday time.Weekday) (*domain.WorkingHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wh := r.items[memoryKey{tenantID, professionalID}].ForWeekday(weekday)
	if wh == nil {
		return nil, ErrNotWorking
	}
	result := *wh
	return &result, nil
}

// ListByProfessional получает недельное расписание специалиста
func (r *MemoryRepository) ListByProfessional(_ context.Context, tenantID, professionalID int64) (domain.WeeklySchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.items[memoryKey{tenantID, professionalID}]
	result := make(domain.WeeklySchedule, len(stored))
	copy(result, stored)
	return result, nil
}

// ReplaceWeek заменяет недельное расписание специалиста целиком
func (r *MemoryRepository) ReplaceWeek(_ context.Context, tenantID, professionalID int64, schedule domain.WeeklySchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make(domain.WeeklySchedule, len(schedule))
	for i, wh := range schedule {
		wh.TenantID = tenantID
		wh.ProfessionalID = professionalID
		stored[i] = wh
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].Weekday < stored[j].Weekday })

	r.items[memoryKey{tenantID, professionalID}] = stored
	return nil
}
