package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	catalogRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/catalog"
	rulesRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/rules"
	"github.com/ddduartediego/BelloProject-sub000/internal/service/schedule/models"
)

// Service сервис правил календаря и рабочих часов специалистов
type Service struct {
	rulesRepo   RulesRepository
	hoursRepo   WorkingHoursRepository
	catalogRepo CatalogRepository
	txManager   TransactionManager
	defaults    domain.CalendarRules
	logger      Logger
}

// NewService создает новый экземпляр сервиса.
// defaults используются, когда правила не заданы ни для специалиста, ни для арендатора
func NewService(
	rulesRepo RulesRepository,
	hoursRepo WorkingHoursRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	defaults domain.CalendarRules,
	logger Logger,
) *Service {
	return &Service{
		rulesRepo:   rulesRepo,
		hoursRepo:   hoursRepo,
		catalogRepo: catalogRepo,
		txManager:   txManager,
		defaults:    defaults,
		logger:      logger,
	}
}

// GetRules возвращает действующие правила специалиста.
// Приоритет: специалист > арендатор > значения по умолчанию
func (s *Service) GetRules(ctx context.Context, tenantID, professionalID int64) (*domain.CalendarRules, error) {
	rules, err := s.rulesRepo.GetRulesWithHierarchy(ctx, tenantID, professionalID)
	if err == nil {
		// Пояс не хранится в таблице, берется из конфигурации салона
		withZone := *rules
		if withZone.Location == nil {
			withZone.Location = s.defaults.Location
		}
		return &withZone, nil
	}
	if !errors.Is(err, rulesRepo.ErrRulesNotFound) {
		s.logger.Error("GetRules: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetRules - repository error: %v", ErrInternal, err)
	}

	defaults := s.defaults
	defaults.TenantID = tenantID
	return &defaults, nil
}

// GetRulesForProfessional возвращает действующие правила специалиста с указанием уровня
func (s *Service) GetRulesForProfessional(ctx context.Context, tenantID, professionalID int64) (*models.RulesResponse, error) {
	s.logger.Info("GetRulesForProfessional: tenant=%d, professional=%d", tenantID, professionalID)

	if err := s.ensureProfessional(ctx, "GetRulesForProfessional", tenantID, professionalID); err != nil {
		return nil, err
	}

	rules, err := s.GetRules(ctx, tenantID, professionalID)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainRules(rules)
	s.logger.Info("GetRulesForProfessional: professional=%d uses %s rules", professionalID, resp.Level)
	return resp, nil
}

// GetTenantRules возвращает правила уровня арендатора или значения по умолчанию
func (s *Service) GetTenantRules(ctx context.Context, tenantID int64) (*models.RulesResponse, error) {
	s.logger.Info("GetTenantRules: tenant=%d", tenantID)

	rules, err := s.baseRules(ctx, tenantID, nil)
	if err != nil {
		return nil, err
	}

	rules.TenantID = tenantID
	return models.FromDomainRules(rules), nil
}

// UpdateRules сохраняет правила уровня специалиста или арендатора.
// Поддерживает частичное обновление поверх действующих правил
func (s *Service) UpdateRules(ctx context.Context, req *models.UpdateRulesRequest) (*models.RulesResponse, error) {
	s.logger.Info("UpdateRules: tenant=%d, professional=%v", req.TenantID, req.ProfessionalID)

	// 1. Проверяем специалиста, если правила персональные
	if req.ProfessionalID != nil {
		if err := s.ensureProfessional(ctx, "UpdateRules", req.TenantID, *req.ProfessionalID); err != nil {
			return nil, err
		}
	}

	// 2. Берём текущие правила как основу
	base, err := s.baseRules(ctx, req.TenantID, req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	// 3. Накладываем изменения и валидируем
	updated := *base
	updated.TenantID = req.TenantID
	updated.ProfessionalID = req.ProfessionalID
	req.ApplyTo(&updated)

	if err := updated.Validate(); err != nil {
		s.logger.Warn("UpdateRules: validation failed: %v", err)
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.rulesRepo.Upsert(ctx, &updated)
	if err != nil {
		s.logger.Error("UpdateRules: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateRules - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRules: saved rules id=%d", saved.ID)
	return models.FromDomainRules(saved), nil
}

// DeleteRules удаляет правила одного уровня, после чего действуют правила уровнем выше
func (s *Service) DeleteRules(ctx context.Context, tenantID int64, professionalID *int64) error {
	s.logger.Info("DeleteRules: tenant=%d, professional=%v", tenantID, professionalID)

	if err := s.rulesRepo.Delete(ctx, tenantID, professionalID); err != nil {
		if errors.Is(err, rulesRepo.ErrRulesNotFound) {
			s.logger.Warn("DeleteRules: no rules for tenant=%d, professional=%v", tenantID, professionalID)
			return ErrRulesNotFound
		}
		s.logger.Error("DeleteRules: repository error: %v", err)
		return fmt.Errorf("%w: DeleteRules - repository error: %v", ErrInternal, err)
	}

	return nil
}

// GetWorkingHours возвращает недельное расписание специалиста
func (s *Service) GetWorkingHours(ctx context.Context, tenantID, professionalID int64) (*models.WeekResponse, error) {
	s.logger.Info("GetWorkingHours: tenant=%d, professional=%d", tenantID, professionalID)

	if err := s.ensureProfessional(ctx, "GetWorkingHours", tenantID, professionalID); err != nil {
		return nil, err
	}

	schedule, err := s.hoursRepo.ListByProfessional(ctx, tenantID, professionalID)
	if err != nil {
		s.logger.Error("GetWorkingHours: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(professionalID, schedule), nil
}

// ReplaceWorkingHours заменяет недельное расписание специалиста целиком в одной транзакции
func (s *Service) ReplaceWorkingHours(ctx context.Context, req *models.ReplaceWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("ReplaceWorkingHours: tenant=%d, professional=%d, days=%d",
		req.TenantID, req.ProfessionalID, len(req.Days))

	// 1. Валидация расписания
	schedule := req.ToDomainSchedule()
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("ReplaceWorkingHours: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем специалиста
	if err := s.ensureProfessional(ctx, "ReplaceWorkingHours", req.TenantID, req.ProfessionalID); err != nil {
		return nil, err
	}

	// 3. Удаление и вставка в одной транзакции
	var saved domain.WeeklySchedule
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.hoursRepo.ReplaceWeek(txCtx, req.TenantID, req.ProfessionalID, schedule); err != nil {
			return err
		}

		var err error
		saved, err = s.hoursRepo.ListByProfessional(txCtx, req.TenantID, req.ProfessionalID)
		return err
	})
	if err != nil {
		s.logger.Error("ReplaceWorkingHours: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWorkingHours: professional=%d works %d day(s) a week", req.ProfessionalID, len(saved))
	return models.FromDomainSchedule(req.ProfessionalID, saved), nil
}

// Вспомогательные методы

// baseRules правила, поверх которых применяется частичное обновление
func (s *Service) baseRules(ctx context.Context, tenantID int64, professionalID *int64) (*domain.CalendarRules, error) {
	if professionalID != nil {
		return s.GetRules(ctx, tenantID, *professionalID)
	}

	rules, err := s.rulesRepo.GetByTenantAndProfessional(ctx, tenantID, nil)
	if err == nil {
		return rules, nil
	}
	if !errors.Is(err, rulesRepo.ErrRulesNotFound) {
		s.logger.Error("UpdateRules: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: UpdateRules - repository error: %v", ErrInternal, err)
	}

	defaults := s.defaults
	return &defaults, nil
}

// ensureProfessional проверяет, что специалист существует и активен
func (s *Service) ensureProfessional(ctx context.Context, op string, tenantID, professionalID int64) error {
	if _, err := s.catalogRepo.GetProfessional(ctx, tenantID, professionalID); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			s.logger.Warn("%s: professional id=%d not found", op, professionalID)
			return ErrProfessionalNotFound
		}
		s.logger.Error("%s: failed to get professional id=%d: %v", op, professionalID, err)
		return fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	return nil
}
