package domain

// Professional a staff member who performs services
type Professional struct {
	ID       int64
	TenantID int64
	Name     string
	Active   bool
}

// Service an offered service; supplies the duration used for interval math
type Service struct {
	ID              int64
	TenantID        int64
	Name            string
	DurationMinutes int
	Active          bool
}

// ValidateDuration checks the service duration bounds
func (s *Service) ValidateDuration() error {
	if s.DurationMinutes < MinServiceDurationMinutes || s.DurationMinutes > MaxServiceDurationMinutes {
		return NewValidationError("service %d duration %d is outside %d..%d minutes",
			s.ID, s.DurationMinutes, MinServiceDurationMinutes, MaxServiceDurationMinutes)
	}
	return nil
}
