package update_schedule_rules

import (
	"context"

	"github.com/ddduartediego/BelloProject-sub000/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateRules(ctx context.Context, req *models.UpdateRulesRequest) (*models.RulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
