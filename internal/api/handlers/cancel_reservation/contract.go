package cancel_reservation

import (
	"context"

	"github.com/officely-app/Officely-BookingService/internal/domain"
)

type ReservationService interface {
	Cancel(ctx context.Context, actor domain.Actor, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
