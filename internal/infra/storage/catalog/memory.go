package catalog

import (
	"context"
	"sync"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// MemoryRepository справочник в памяти процесса. Наполняется через Add*
type MemoryRepository struct {
	mu            sync.RWMutex
	professionals map[int64]domain.Professional
	services      map[int64]domain.Service
}

// NewMemoryRepository создает пустой справочник
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		professionals: make(map[int64]domain.Professional),
		services:      make(map[int64]domain.Service),
	}
}

// AddProfessional добавляет или заменяет специалиста
func (r *MemoryRepository) AddProfessional(p domain.Professional) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.professionals[p.ID] = p
}

// AddService добавляет или заменяет услугу
func (r *MemoryRepository) AddService(s domain.Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[s.ID] = s
}

// GetProfessional получает активного специалиста арендатора
func (r *MemoryRepository) GetProfessional(_ context.Context, tenantID, professionalID int64) (*domain.Professional, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.professionals[professionalID]
	if !ok || p.TenantID != tenantID || !p.Active {
		return nil, ErrProfessionalNotFound
	}
	return &p, nil
}

// GetService получает активную услугу арендатора
func (r *MemoryRepository) GetService(_ context.Context, tenantID, serviceID int64) (*domain.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[serviceID]
	if !ok || s.TenantID != tenantID || !s.Active {
		return nil, ErrServiceNotFound
	}
	return &s, nil
}
