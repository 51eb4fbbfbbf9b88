package search_offices

import (
	"context"
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
)

// OfficeRepository интерфейс репозитория офисов
type OfficeRepository interface {
	FindAvailable(
		ctx context.Context,
		startDate, endDate time.Time,
		filter domain.OfficeFilter,
		sortBy *domain.OfficeSortField,
		ascending bool,
		page, pageSize int,
	) ([]*domain.Office, error)
}

// PricingService интерфейс движка динамического ценообразования
type PricingService interface {
	ComputeMultiplier(ctx context.Context, startDate, endDate time.Time) (float64, error)
	RecordVisit(ctx context.Context, startDate, endDate time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
