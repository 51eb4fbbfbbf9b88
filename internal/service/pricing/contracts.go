package pricing

import (
	"context"
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
)

// TrafficRepository интерфейс репозитория статистики посещений
type TrafficRepository interface {
	GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.TrafficStatistic, error)
	SaveAll(ctx context.Context, statistics []*domain.TrafficStatistic) error
	AverageSince(ctx context.Context, since time.Time) (*float64, error)
	StddevSince(ctx context.Context, since time.Time) (*float64, error)
	MaxBetween(ctx context.Context, startDate, endDate time.Time) (*int, error)
}

// MultiplierCache интерфейс кеша вычисленных множителей
// Может быть nil - тогда кеширование отключено
type MultiplierCache interface {
	Get(ctx context.Context, startDate, endDate time.Time) (float64, bool, error)
	Set(ctx context.Context, startDate, endDate time.Time, multiplier float64) error
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
