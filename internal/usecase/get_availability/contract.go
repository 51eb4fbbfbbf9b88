package get_availability

import (
	"context"
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	"github.com/officely-app/Officely-BookingService/internal/service/pricing"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByOfficeOverlapping(ctx context.Context, officeID string, startDate, endDate time.Time) ([]*domain.Reservation, error)
}

// OfficeRepository интерфейс репозитория офисов
type OfficeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Office, error)
}

// TrafficRepository интерфейс репозитория статистики посещений
type TrafficRepository interface {
	GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.TrafficStatistic, error)
}

// PricingService интерфейс движка динамического ценообразования
type PricingService interface {
	CurrentBaseline(ctx context.Context) (pricing.Baseline, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
