package get_slots

import (
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	getSlots "github.com/ddduartediego/BelloProject-sub000/internal/usecase/get_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date               string `json:"date"`
	ProfessionalID     int64  `json:"professionalId"`
	DurationMinutes    int    `json:"durationMinutes"`
	GranularityMinutes int    `json:"granularityMinutes"`
	WorkingDay         bool   `json:"workingDay"`
	Slots              []Slot `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	StartsAt  time.Time `json:"startsAt"`
	Time      string    `json:"time"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = Slot{
			StartsAt:  s.Start,
			Time:      s.Start.Format(domain.TimeFormat),
			Available: s.Available,
			Reason:    string(s.Reason),
			Detail:    s.Detail,
		}
	}

	return &SlotsResponse{
		Date:               resp.Date.Format(domain.DateFormat),
		ProfessionalID:     resp.ProfessionalID,
		DurationMinutes:    resp.DurationMinutes,
		GranularityMinutes: resp.GranularityMinutes,
		WorkingDay:         resp.WorkingDay,
		Slots:              slots,
	}
}
