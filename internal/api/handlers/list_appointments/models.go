package list_appointments

import (
	"net/http"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/api/handlers"
	"github.com/ddduartediego/BelloProject-sub000/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Query params: professionalId, date (YYYY-MM-DD) или from/to (RFC3339), status (через запятую)
func ToServiceRequest(r *http.Request, tenantID int64, location *time.Location) (*models.ListRequest, error) {
	req := &models.ListRequest{
		TenantID: tenantID,
		Statuses: handlers.QueryList(r, "status"),
	}

	var err error
	if req.ProfessionalID, err = handlers.QueryID(r, "professionalId"); err != nil {
		return nil, err
	}
	if req.Date, err = handlers.QueryDate(r, "date", location); err != nil {
		return nil, err
	}
	if req.From, err = handlers.QueryTime(r, "from"); err != nil {
		return nil, err
	}
	if req.To, err = handlers.QueryTime(r, "to"); err != nil {
		return nil, err
	}

	return req, nil
}
