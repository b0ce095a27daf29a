package rules

import (
	"context"
	"sync"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

type memoryKey struct {
	tenantID       int64
	professionalID int64 // 0 - правила арендатора
}

// MemoryRepository правила календаря в памяти процесса
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[memoryKey]domain.CalendarRules
}

// NewMemoryRepository создает пустое хранилище правил
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[memoryKey]domain.CalendarRules)}
}

func keyOf(tenantID int64, professionalID *int64) memoryKey {
	if professionalID == nil {
		return memoryKey{tenantID: tenantID}
	}
	return memoryKey{tenantID: tenantID, professionalID: *professionalID}
}

// GetByTenantAndProfessional получает правила ровно одного уровня
func (r *MemoryRepository) GetByTenantAndProfessional(_ context.Context, tenantID int64, professionalID *int64) (*domain.CalendarRules, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules, ok := r.items[keyOf(tenantID, professionalID)]
	if !ok {
		return nil, ErrRulesNotFound
	}
	return &rules, nil
}

// GetRulesWithHierarchy правила специалиста, затем правила арендатора
func (r *MemoryRepository) GetRulesWithHierarchy(ctx context.Context, tenantID, professionalID int64) (*domain.CalendarRules, error) {
	if rules, err := r.GetByTenantAndProfessional(ctx, tenantID, &professionalID); err == nil {
		return rules, nil
	}
	return r.GetByTenantAndProfessional(ctx, tenantID, nil)
}

// Upsert создает или обновляет правила уровня
func (r *MemoryRepository) Upsert(_ context.Context, rules *domain.CalendarRules) (*domain.CalendarRules, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(rules.TenantID, rules.ProfessionalID)
	saved := *rules
	now := time.Now()

	if existing, ok := r.items[key]; ok {
		saved.ID = existing.ID
		saved.CreatedAt = existing.CreatedAt
	} else {
		r.nextID++
		saved.ID = r.nextID
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now

	r.items[key] = saved
	return &saved, nil
}

// Delete удаляет правила одного уровня
func (r *MemoryRepository) Delete(_ context.Context, tenantID int64, professionalID *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(tenantID, professionalID)
	if _, ok := r.items[key]; !ok {
		return ErrRulesNotFound
	}
	delete(r.items, key)
	return nil
}
