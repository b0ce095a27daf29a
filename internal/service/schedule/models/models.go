package models

import (
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/pkg/types"
)

// Уровни, с которых взяты правила
const (
	LevelProfessional = "professional"
	LevelTenant       = "tenant"
	LevelDefault      = "default"
)

// Request модели

// UpdateRulesRequest запрос на изменение правил календаря.
// ProfessionalID = nil изменяет правила всего арендатора.
// Все поля опциональны - непереданные берутся из действующих правил
type UpdateRulesRequest struct {
	TenantID                int64             `json:"-"`
	ProfessionalID          *int64            `json:"-"`
	GranularityMinutes      *int              `json:"granularityMinutes,omitempty"`
	ProximityMinutes        *int              `json:"proximityMinutes,omitempty"`
	SuggestionBufferMinutes *int              `json:"suggestionBufferMinutes,omitempty"`
	BusinessOpen            *types.TimeString `json:"businessOpen,omitempty"`
	BusinessClose           *types.TimeString `json:"businessClose,omitempty"`
}

// WorkingDay рабочие часы одного дня недели
type WorkingDay struct {
	Weekday    time.Weekday      `json:"weekday"` // 0 - воскресенье
	Start      types.TimeString  `json:"start"`
	End        types.TimeString  `json:"end"`
	BreakStart *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd   *types.TimeString `json:"breakEnd,omitempty"`
}

// ReplaceWeekRequest запрос на замену недельного расписания.
// Дни, которых нет в Days, считаются выходными
type ReplaceWeekRequest struct {
	TenantID       int64        `json:"-"`
	ProfessionalID int64        `json:"-"`
	Days           []WorkingDay `json:"days"`
}

// Response модели

// RulesResponse действующие правила календаря
type RulesResponse struct {
	ID                      int64            `json:"id,omitempty"`
	TenantID                int64            `json:"tenantId"`
	ProfessionalID          *int64           `json:"professionalId,omitempty"`
	Level                   string           `json:"level"`
	GranularityMinutes      int              `json:"granularityMinutes"`
	ProximityMinutes        int              `json:"proximityMinutes"`
	SuggestionBufferMinutes int              `json:"suggestionBufferMinutes"`
	BusinessOpen            types.TimeString `json:"businessOpen"`
	BusinessClose           types.TimeString `json:"businessClose"`
	UpdatedAt               *time.Time       `json:"updatedAt,omitempty"`
}

// WeekResponse недельное расписание специалиста
type WeekResponse struct {
	ProfessionalID int64        `json:"professionalId"`
	Days           []WorkingDay `json:"days"`
}

// Методы конвертации

// FromDomainRules конвертирует правила в DTO и определяет их уровень
func FromDomainRules(r *domain.CalendarRules) *RulesResponse {
	if r == nil {
		return nil
	}

	resp := &RulesResponse{
		ID:                      r.ID,
		TenantID:                r.TenantID,
		ProfessionalID:          r.ProfessionalID,
		GranularityMinutes:      r.GranularityMinutes,
		ProximityMinutes:        r.ProximityMinutes,
		SuggestionBufferMinutes: r.SuggestionBufferMinutes,
		BusinessOpen:            r.BusinessOpen,
		BusinessClose:           r.BusinessClose,
	}

	switch {
	case r.IsDefault():
		resp.Level = LevelDefault
	case r.IsProfessionalSpecific():
		resp.Level = LevelProfessional
	default:
		resp.Level = LevelTenant
	}

	if !r.UpdatedAt.IsZero() {
		updatedAt := r.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// ApplyTo накладывает переданные поля на правила
func (r *UpdateRulesRequest) ApplyTo(rules *domain.CalendarRules) {
	if r.GranularityMinutes != nil {
		rules.GranularityMinutes = *r.GranularityMinutes
	}
	if r.ProximityMinutes != nil {
		rules.ProximityMinutes = *r.ProximityMinutes
	}
	if r.SuggestionBufferMinutes != nil {
		rules.SuggestionBufferMinutes = *r.SuggestionBufferMinutes
	}
	if r.BusinessOpen != nil {
		rules.BusinessOpen = *r.BusinessOpen
	}
	if r.BusinessClose != nil {
		rules.BusinessClose = *r.BusinessClose
	}
}

// ToDomainSchedule конвертирует запрос в недельное расписание
func (r *ReplaceWeekRequest) ToDomainSchedule() domain.WeeklySchedule {
	schedule := make(domain.WeeklySchedule, 0, len(r.Days))
	for _, d := range r.Days {
		schedule = append(schedule, domain.WorkingHours{
			TenantID:       r.TenantID,
			ProfessionalID: r.ProfessionalID,
			Weekday:        d.Weekday,
			Start:          d.Start,
			End:            d.End,
			BreakStart:     d.BreakStart,
			BreakEnd:       d.BreakEnd,
		})
	}
	return schedule
}

// FromDomainSchedule конвертирует недельное расписание в DTO
func FromDomainSchedule(professionalID int64, schedule domain.WeeklySchedule) *WeekResponse {
	resp := &WeekResponse{
		ProfessionalID: professionalID,
		Days:           make([]WorkingDay, 0, len(schedule)),
	}
	for _, wh := range schedule {
		resp.Days = append(resp.Days, WorkingDay{
			Weekday:    wh.Weekday,
			Start:      wh.Start,
			End:        wh.End,
			BreakStart: wh.BreakStart,
			BreakEnd:   wh.BreakEnd,
		})
	}
	return resp
}
