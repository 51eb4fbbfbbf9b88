package create_reservation

import (
	"context"
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ExistsOverlapping(ctx context.Context, officeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

// OfficeRepository интерфейс репозитория офисов
type OfficeRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Office, error)
}

// PricingService интерфейс движка динамического ценообразования
type PricingService interface {
	ComputeMultiplier(ctx context.Context, startDate, endDate time.Time) (float64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
