package conflicts

import (
	"context"
	"fmt"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// LocalChecker проверяет кандидата по уже загруженному списку записей.
// Используется для мгновенной обратной связи, результат носит рекомендательный характер
type LocalChecker struct {
	resolver *Resolver
	existing []*domain.Appointment
}

// NewLocalChecker создает проверку по списку записей в памяти
func NewLocalChecker(rules domain.CalendarRules, existing []*domain.Appointment) *LocalChecker {
	return &LocalChecker{
		resolver: NewResolver(rules),
		existing: existing,
	}
}

// Check выполняет проверку без обращения к хранилищу
func (c *LocalChecker) Check(_ context.Context, candidate Candidate) (*domain.ConflictVerdict, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	return c.resolver.Check(candidate, c.existing), nil
}

// RemoteChecker проверяет кандидата по актуальному состоянию хранилища.
// Внутри транзакции гейткипера читает записи с блокировкой строк
type RemoteChecker struct {
	repo   AppointmentReader
	rules  RulesProvider
	logger Logger
}

// NewRemoteChecker создает проверку по репозиторию
func NewRemoteChecker(repo AppointmentReader, rules RulesProvider, logger Logger) *RemoteChecker {
	return &RemoteChecker{
		repo:   repo,
		rules:  rules,
		logger: logger,
	}
}

// Check загружает правила и записи специалиста за день(дни) кандидата
// и передаёт их тому же Resolver, что и LocalChecker
func (c *RemoteChecker) Check(ctx context.Context, candidate Candidate) (*domain.ConflictVerdict, error) {
	// 1. Валидация кандидата
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	// 2. Правила календаря специалиста
	rules, err := c.rules.GetRules(ctx, candidate.TenantID, candidate.ProfessionalID)
	if err != nil {
		c.logger.Error("CheckConflict: failed to get rules for professional=%d: %v", candidate.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrRepository, err)
	}

	// 3. Кандидат в часовом поясе салона, от него считаются границы дня
	candidate.Interval = domain.TimeInterval{
		Start: rules.In(candidate.Interval.Start),
		End:   rules.In(candidate.Interval.End),
	}

	// 4. Записи за день начала и, если интервал переходит через полночь, за день окончания
	existing, err := c.load(ctx, candidate)
	if err != nil {
		return nil, err
	}

	// 5. Общий алгоритм
	verdict := NewResolver(*rules).Check(candidate, existing)

	if verdict.HasConflict {
		c.logger.Warn("CheckConflict: professional=%d, %s: %d conflict(s)",
			candidate.ProfessionalID, candidate.Interval.Start.Format(domain.TimeFormat), len(verdict.Conflicts))
	}

	return verdict, nil
}

func (c *RemoteChecker) load(ctx context.Context, candidate Candidate) ([]*domain.Appointment, error) {
	startDay := domain.DayBounds(candidate.Interval.Start)

	existing, err := c.repo.ListByProfessionalAndDate(ctx, candidate.TenantID, candidate.ProfessionalID, startDay.Start)
	if err != nil {
		c.logger.Error("CheckConflict: failed to list appointments for professional=%d: %v", candidate.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrRepository, err)
	}

	// Конец интервала не включается, поэтому запись до 00:00 следующего дня не затрагивает
	if !candidate.Interval.End.After(startDay.End) {
		return existing, nil
	}

	nextDay, err := c.repo.ListByProfessionalAndDate(ctx, candidate.TenantID, candidate.ProfessionalID, startDay.End)
	if err != nil {
		c.logger.Error("CheckConflict: failed to list appointments for professional=%d: %v", candidate.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrRepository, err)
	}

	seen := make(map[int64]struct{}, len(existing))
	for _, a := range existing {
		seen[a.ID] = struct{}{}
	}
	for _, a := range nextDay {
		if _, ok := seen[a.ID]; !ok {
			existing = append(existing, a)
		}
	}

	return existing, nil
}
