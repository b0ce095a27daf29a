package appointments

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/appointment"
	"github.com/ddduartediego/BelloProject-sub000/internal/service/appointments/models"
)

// Service сервис чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID в рамках арендатора
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d, tenant=%d", id, tenantID)

	a, err := s.appointmentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(a), nil
}

// List получает записи арендатора по фильтру, упорядоченные по началу
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: tenant=%d, professional=%v, statuses=%v", req.TenantID, req.ProfessionalID, req.Statuses)

	// 1. Строим типизированный фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		s.logger.Warn("List: empty range %s - %s", filter.From, filter.To)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	// 2. Запрашиваем записи
	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d appointment(s)", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}
