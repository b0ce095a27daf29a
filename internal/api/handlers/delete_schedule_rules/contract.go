package delete_schedule_rules

import "context"

type ScheduleService interface {
	DeleteRules(ctx context.Context, tenantID int64, professionalID *int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
