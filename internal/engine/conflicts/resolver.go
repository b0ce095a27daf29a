package conflicts

import (
	"fmt"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// Resolver чистый алгоритм проверки конфликтов.
// Не обращается к хранилищу и не читает текущее время
type Resolver struct {
	rules domain.CalendarRules
}

// NewResolver создает резолвер с заданными правилами календаря
func NewResolver(rules domain.CalendarRules) *Resolver {
	return &Resolver{rules: rules}
}

// Rules возвращает правила, с которыми работает резолвер
func (r *Resolver) Rules() domain.CalendarRules {
	return r.rules
}

// Check сравнивает кандидата с существующими записями.
//
// Учитываются только активные записи того же арендатора и специалиста,
// кроме ExcludeAppointmentID. Пересечение даёт конфликт, близость начал
// без пересечения даёт предупреждение.
func (r *Resolver) Check(candidate Candidate, existing []*domain.Appointment) *domain.ConflictVerdict {
	verdict := &domain.ConflictVerdict{
		Conflicts: make([]*domain.Appointment, 0),
		Warnings:  make([]string, 0),
	}

	proximity := float64(r.rules.ProximityMinutes)
	loc := r.rules.In(candidate.Interval.Start).Location()

	for _, a := range existing {
		if !r.isRelevant(candidate, a) {
			continue
		}

		if domain.Overlaps(candidate.Interval, a.Interval) {
			verdict.Conflicts = append(verdict.Conflicts, a)
			continue
		}

		if gap := domain.ProximityMinutes(candidate.Interval, a.Interval); gap < proximity {
			verdict.Warnings = append(verdict.Warnings, proximityWarning(a, gap, loc))
		}
	}

	if len(verdict.Conflicts) == 0 {
		return verdict
	}

	verdict.HasConflict = true
	verdict.Suggestion = r.suggest(verdict.Conflicts, loc)

	return verdict
}

func (r *Resolver) isRelevant(candidate Candidate, a *domain.Appointment) bool {
	if a == nil || !a.IsActive() {
		return false
	}
	if a.TenantID != candidate.TenantID || a.ProfessionalID != candidate.ProfessionalID {
		return false
	}
	if candidate.ExcludeAppointmentID != nil && a.ID == *candidate.ExcludeAppointmentID {
		return false
	}
	return true
}

// suggest берёт самый поздний конец среди конфликтов и добавляет буфер.
// Рабочие часы салона считаются в loc. Возвращает nil, если результат вне них
func (r *Resolver) suggest(conflicts []*domain.Appointment, loc *time.Location) *time.Time {
	latest := conflicts[0].Interval.End
	for _, c := range conflicts[1:] {
		if c.Interval.End.After(latest) {
			latest = c.Interval.End
		}
	}

	suggestion := latest.In(loc).Add(r.rules.SuggestionBuffer())

	hours, err := r.rules.BusinessHoursOn(suggestion)
	if err != nil || !hours.Contains(suggestion) {
		return nil
	}
	return &suggestion
}

func proximityWarning(a *domain.Appointment, gap float64, loc *time.Location) string {
	client := a.ClientName
	if client == "" {
		client = fmt.Sprintf("client #%d", a.ClientID)
	}
	return fmt.Sprintf("too close to %s's appointment at %s (%.0f min between starts)",
		client, a.Interval.Start.In(loc).Format(domain.TimeFormat), gap)
}
