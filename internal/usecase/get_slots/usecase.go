package get_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/internal/engine/slots"
	catalogRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/catalog"
	hoursRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/workinghours"
)

// UseCase use case построения сетки слотов специалиста на день
type UseCase struct {
	appointmentRepo AppointmentRepository
	hoursRepo       WorkingHoursRepository
	rules           RulesProvider
	catalogRepo     CatalogRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	hoursRepo WorkingHoursRepository,
	rules RulesProvider,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		hoursRepo:       hoursRepo,
		rules:           rules,
		catalogRepo:     catalogRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов.
// Результат носит рекомендательный характер, окончательную проверку делает commit_booking
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetSlots: tenant=%d, professional=%d, date=%s",
		req.TenantID, req.ProfessionalID, req.Date.Format(domain.DateFormat))

	// 2. Проверяем специалиста
	if _, err := uc.catalogRepo.GetProfessional(ctx, req.TenantID, req.ProfessionalID); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetSlots: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetSlots: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 3. Длительность услуги
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Правила календаря
	rules, err := uc.rules.GetRules(ctx, req.TenantID, req.ProfessionalID)
	if err != nil {
		uc.logger.Error("GetSlots: failed to get rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:               domain.DayBounds(req.Date).Start,
		ProfessionalID:     req.ProfessionalID,
		DurationMinutes:    duration,
		GranularityMinutes: rules.GranularityMinutes,
		Slots:              []domain.Slot{},
	}

	// 5. Рабочие часы на день недели. Нет записи - выходной
	workingHours, err := uc.hoursRepo.GetByWeekday(ctx, req.TenantID, req.ProfessionalID, req.Date.Weekday())
	if err != nil {
		if errors.Is(err, hoursRepo.ErrNotWorking) {
			uc.logger.Info("GetSlots: professional=%d does not work on %s", req.ProfessionalID, req.Date.Weekday())
			return resp, nil
		}
		uc.logger.Error("GetSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}
	resp.WorkingDay = true

	// 6. Записи специалиста за день
	existing, err := uc.appointmentRepo.ListByProfessionalAndDate(ctx, req.TenantID, req.ProfessionalID, req.Date)
	if err != nil {
		uc.logger.Error("GetSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 7. Строим сетку
	grid, err := slots.Generate(slots.Request{
		Date:                   req.Date,
		ProfessionalID:         req.ProfessionalID,
		WorkingHours:           workingHours,
		ServiceDurationMinutes: duration,
		GranularityMinutes:     rules.GranularityMinutes,
		ProximityMinutes:       rules.ProximityMinutes,
		Existing:               existing,
	})
	if err != nil {
		uc.logger.Error("GetSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	resp.Slots = grid

	uc.logger.Info("GetSlots: professional=%d, %s: %d slot(s), %d free",
		req.ProfessionalID, req.Date.Format(domain.DateFormat), len(grid), countFree(grid))

	return resp, nil
}

// resolveDuration длительность из услуги или из запроса
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes, nil
	}

	service, err := uc.catalogRepo.GetService(ctx, req.TenantID, *req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetSlots: service id=%d not found", *req.ServiceID)
			return 0, ErrServiceNotFound
		}
		uc.logger.Error("GetSlots: failed to get service id=%d: %v", *req.ServiceID, err)
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	return service.DurationMinutes, nil
}

func countFree(grid []domain.Slot) int {
	n := 0
	for i := range grid {
		if grid[i].Available {
			n++
		}
	}
	return n
}
