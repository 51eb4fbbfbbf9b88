package get_reservation

import (
	"context"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	"github.com/officely-app/Officely-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetByID(ctx context.Context, actor domain.Actor, id string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
