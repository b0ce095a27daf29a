package get_working_hours

import (
	"context"

	"github.com/ddduartediego/BelloProject-sub000/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWorkingHours(ctx context.Context, tenantID, professionalID int64) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
