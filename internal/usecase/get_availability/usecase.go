package get_availability

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	officestorage "github.com/officely-app/Officely-BookingService/internal/infra/storage/office"
	"github.com/officely-app/Officely-BookingService/internal/service/pricing"
)

// Request модель запроса календаря доступности
type Request struct {
	OfficeID string    // ID офиса
	Month    time.Time // Любая дата внутри запрашиваемого месяца
}

// Response календарь доступности офиса за один месяц.
// Days - ленивая последовательность свободных дней с множителем цены;
// последовательность можно обходить повторно
type Response struct {
	OfficeID   string
	MonthStart time.Time
	MonthEnd   time.Time
	Days       iter.Seq[domain.AvailableDay]
}

// UseCase use case для построения календаря доступности офиса
type UseCase struct {
	reservationRepo ReservationRepository
	officeRepo      OfficeRepository
	trafficRepo     TrafficRepository
	pricingService  PricingService
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	officeRepo OfficeRepository,
	trafficRepo TrafficRepository,
	pricingService PricingService,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		officeRepo:      officeRepo,
		trafficRepo:     trafficRepo,
		pricingService:  pricingService,
		logger:          logger,
	}
}

// Execute строит календарь доступности офиса за календарный месяц.
// Данные загружаются тремя запросами заранее (бронирования месяца,
// статистика месяца, базовая линия спроса), дальше каждый день
// вычисляется в памяти. Занятые дни пропускаются; для свободных
// множитель считается по счетчику визитов этого дня, при отсутствии
// статистики или пригодной базовой линии множитель нейтральный.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.OfficeID == "" {
		return nil, fmt.Errorf("%w: officeID is required", ErrInvalidInput)
	}
	if req.Month.IsZero() {
		return nil, fmt.Errorf("%w: month is required", ErrInvalidInput)
	}

	monthStart, monthEnd := domain.MonthWindow(req.Month)

	uc.logger.Info("GetAvailability: office=%s, month=%s",
		req.OfficeID, monthStart.Format(domain.MonthFormat))

	if _, err := uc.officeRepo.GetByID(ctx, req.OfficeID); err != nil {
		if errors.Is(err, officestorage.ErrOfficeNotFound) {
			uc.logger.Warn("GetAvailability: office %s not found", req.OfficeID)
			return nil, ErrOfficeNotFound
		}
		uc.logger.Error("GetAvailability: failed to get office: %v", err)
		return nil, fmt.Errorf("%w: failed to get office: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.GetByOfficeOverlapping(ctx, req.OfficeID, monthStart, monthEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	statistics, err := uc.trafficRepo.GetByDateRange(ctx, monthStart, monthEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get traffic statistics: %v", err)
		return nil, fmt.Errorf("%w: failed to get traffic statistics: %v", ErrInternal, err)
	}

	baseline, err := uc.pricingService.CurrentBaseline(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get demand baseline: %v", err)
		return nil, fmt.Errorf("%w: failed to get demand baseline: %v", ErrInternal, err)
	}

	countByDate := make(map[string]int, len(statistics))
	for _, stat := range statistics {
		countByDate[stat.Date.Format(domain.DateFormat)] = stat.VisitorCount
	}

	return &Response{
		OfficeID:   req.OfficeID,
		MonthStart: monthStart,
		MonthEnd:   monthEnd,
		Days:       availableDays(monthStart, monthEnd, reservations, countByDate, baseline),
	}, nil
}

// availableDays возвращает ленивую последовательность свободных дней месяца.
// Все данные уже в памяти, поэтому обход не выполняет запросов и
// последовательность можно обходить сколько угодно раз.
func availableDays(
	monthStart, monthEnd time.Time,
	reservations []*domain.Reservation,
	countByDate map[string]int,
	baseline pricing.Baseline,
) iter.Seq[domain.AvailableDay] {
	return func(yield func(domain.AvailableDay) bool) {
		for day := monthStart; !day.After(monthEnd); day = day.AddDate(0, 0, 1) {
			if dayReserved(day, reservations) {
				continue
			}

			multiplier := domain.NeutralMultiplier
			if count, ok := countByDate[day.Format(domain.DateFormat)]; ok {
				multiplier = pricing.MultiplierFor(count, baseline)
			}

			if !yield(domain.AvailableDay{Date: day, PriceMultiplier: multiplier}) {
				return
			}
		}
	}
}

// dayReserved сообщает, покрыт ли день активным бронированием
func dayReserved(day time.Time, reservations []*domain.Reservation) bool {
	for _, reservation := range reservations {
		if reservation.IsActive() && reservation.CoversDay(day) {
			return true
		}
	}
	return false
}
