package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
)

// Service движок динамического ценообразования
// Множитель цены вычисляется как z-score пика трафика в запрошенном
// диапазоне относительно скользящей базовой линии (средний трафик и
// стандартное отклонение по всем датам от сегодняшнего дня вперед)
type Service struct {
	trafficRepo  TrafficRepository
	cache        MultiplierCache
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр pricing-сервиса
// cache может быть nil - тогда множители вычисляются каждый раз заново
func NewService(trafficRepo TrafficRepository, cache MultiplierCache, logger Logger) *Service {
	return &Service{
		trafficRepo:  trafficRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Baseline базовая линия спроса: среднее и стандартное отклонение
// счетчиков визитов от сегодняшнего дня вперед
// nil-поля означают отсутствие данных
type Baseline struct {
	Average *float64
	Stddev  *float64
}

// Usable сообщает, пригодна ли базовая линия для вычисления множителя
func (b Baseline) Usable() bool {
	return b.Average != nil && b.Stddev != nil && *b.Stddev != 0
}

// ComputeMultiplier вычисляет множитель цены для диапазона дат [startDate, endDate].
// Нейтральный множитель 1.0 возвращается, если нет статистики в диапазоне,
// нет пригодной базовой линии или нет пика.
// Множитель ограничен снизу domain.MinPriceMultiplier; верхней границы нет.
func (s *Service) ComputeMultiplier(ctx context.Context, startDate, endDate time.Time) (float64, error) {
	startDate = domain.DateOnly(startDate)
	endDate = domain.DateOnly(endDate)

	if s.cache != nil {
		multiplier, hit, err := s.cache.Get(ctx, startDate, endDate)
		if err != nil {
			// Кеш не критичен - при ошибке считаем заново
			s.logger.Warn("ComputeMultiplier: cache get failed: %v", err)
		} else if hit {
			return multiplier, nil
		}
	}

	statistics, err := s.trafficRepo.GetByDateRange(ctx, startDate, endDate)
	if err != nil {
		return 0, fmt.Errorf("%w: ComputeMultiplier - get statistics: %v", ErrInternal, err)
	}
	if len(statistics) == 0 {
		return domain.NeutralMultiplier, nil
	}

	baseline, err := s.CurrentBaseline(ctx)
	if err != nil {
		return 0, err
	}
	if !baseline.Usable() {
		return domain.NeutralMultiplier, nil
	}

	peak, err := s.trafficRepo.MaxBetween(ctx, startDate, endDate)
	if err != nil {
		return 0, fmt.Errorf("%w: ComputeMultiplier - get peak: %v", ErrInternal, err)
	}
	if peak == nil {
		return domain.NeutralMultiplier, nil
	}

	multiplier := MultiplierFor(*peak, baseline)

	if s.cache != nil {
		if err := s.cache.Set(ctx, startDate, endDate, multiplier); err != nil {
			s.logger.Warn("ComputeMultiplier: cache set failed: %v", err)
		}
	}

	s.logger.Info("ComputeMultiplier: range=%s..%s peak=%d multiplier=%.4f",
		startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat), *peak, multiplier)

	return multiplier, nil
}

// CurrentBaseline возвращает базовую линию спроса от сегодняшнего дня вперед
func (s *Service) CurrentBaseline(ctx context.Context) (Baseline, error) {
	today := domain.DateOnly(s.timeProvider.Now())

	average, err := s.trafficRepo.AverageSince(ctx, today)
	if err != nil {
		return Baseline{}, fmt.Errorf("%w: CurrentBaseline - get average: %v", ErrInternal, err)
	}

	stddev, err := s.trafficRepo.StddevSince(ctx, today)
	if err != nil {
		return Baseline{}, fmt.Errorf("%w: CurrentBaseline - get stddev: %v", ErrInternal, err)
	}

	return Baseline{Average: average, Stddev: stddev}, nil
}

// MultiplierFor вычисляет множитель для одного значения счетчика визитов
// относительно базовой линии: max(1 + ((count - avg) / stddev) * IMPACT, MIN).
// Используется и для диапазонов (count = пик диапазона), и календарем
// доступности для отдельных дней (count = счетчик этого дня).
func MultiplierFor(count int, baseline Baseline) float64 {
	if !baseline.Usable() {
		return domain.NeutralMultiplier
	}

	multiplier := 1 + ((float64(count)-*baseline.Average)/(*baseline.Stddev))*domain.PricingImpact
	if multiplier < domain.MinPriceMultiplier {
		return domain.MinPriceMultiplier
	}
	return multiplier
}

// RecordVisit инкрементирует счетчик визитов для каждой даты диапазона
// [startDate, endDate] включительно. Для дат без статистики создается
// запись со счетчиком 1. Вызывается на каждый browse/search запрос.
// Конкурентные инкременты могут гоняться - потеря единичных визитов допустима.
func (s *Service) RecordVisit(ctx context.Context, startDate, endDate time.Time) error {
	startDate = domain.DateOnly(startDate)
	endDate = domain.DateOnly(endDate)

	existing, err := s.trafficRepo.GetByDateRange(ctx, startDate, endDate)
	if err != nil {
		return fmt.Errorf("%w: RecordVisit - get statistics: %v", ErrInternal, err)
	}

	byDate := make(map[string]*domain.TrafficStatistic, len(existing))
	for _, stat := range existing {
		byDate[stat.Date.Format(domain.DateFormat)] = stat
	}

	updated := make([]*domain.TrafficStatistic, 0)
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		stat, ok := byDate[day.Format(domain.DateFormat)]
		if !ok {
			stat = &domain.TrafficStatistic{
				Date:         day,
				VisitorCount: 1,
			}
		} else {
			stat.Increment()
		}
		updated = append(updated, stat)
	}

	if err := s.trafficRepo.SaveAll(ctx, updated); err != nil {
		return fmt.Errorf("%w: RecordVisit - save statistics: %v", ErrInternal, err)
	}

	return nil
}
