package update_reservation

import (
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	"github.com/officely-app/Officely-BookingService/internal/service/reservations/models"
)

// UpdateReservationRequest HTTP request model.
// Отсутствующее поле оставляет текущее значение без изменений.
type UpdateReservationRequest struct {
	StartDate *string `json:"startDate,omitempty"` // "2025-06-01"
	EndDate   *string `json:"endDate,omitempty"`
	Comments  *string `json:"comments,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateReservationRequest) ToServiceRequest(actor domain.Actor) (*models.UpdateReservationRequest, error) {
	req := &models.UpdateReservationRequest{
		Actor:    actor,
		Comments: r.Comments,
	}

	if r.StartDate != nil {
		startDate, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if r.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	return req, nil
}
