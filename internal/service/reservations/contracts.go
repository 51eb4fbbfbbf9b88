package reservations

import (
	"context"
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	GetByIDAndUser(ctx context.Context, id string, userID string) (*domain.Reservation, error)
	ExistsOverlapping(ctx context.Context, officeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
	GetWithFilter(ctx context.Context, userID *string, filter domain.ReservationFilter, sortBy *domain.ReservationSortField, ascending bool, page, pageSize int) ([]*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
