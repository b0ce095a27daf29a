package get_schedule_rules

import (
	"context"

	"github.com/ddduartediego/BelloProject-sub000/internal/service/schedule/models"
)

type ScheduleService interface {
	GetTenantRules(ctx context.Context, tenantID int64) (*models.RulesResponse, error)
	GetRulesForProfessional(ctx context.Context, tenantID, professionalID int64) (*models.RulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
