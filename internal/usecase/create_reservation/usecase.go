package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	officestorage "github.com/officely-app/Officely-BookingService/internal/infra/storage/office"
)

// UseCase use case для создания бронирования офиса
type UseCase struct {
	reservationRepo ReservationRepository
	officeRepo      OfficeRepository
	pricingService  PricingService
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	officeRepo OfficeRepository,
	pricingService PricingService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		officeRepo:      officeRepo,
		pricingService:  pricingService,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка идут в одной сериализуемой транзакции,
// иначе два конкурентных запроса на один диапазон могут оба пройти проверку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%s, office=%s, dates=%s..%s",
		req.UserID, req.OfficeID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем даты до полуночи и валидируем
	now := uc.timeProvider.Now()
	startDate := domain.DateOnly(req.StartDate)
	endDate := domain.DateOnly(req.EndDate)

	if err := validateDates(startDate, endDate, now); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем офис
	office, err := uc.officeRepo.GetByID(ctx, req.OfficeID)
	if err != nil {
		if errors.Is(err, officestorage.ErrOfficeNotFound) {
			uc.logger.Warn("CreateReservation: office %s not found", req.OfficeID)
			return nil, ErrOfficeNotFound
		}
		uc.logger.Error("CreateReservation: failed to get office: %v", err)
		return nil, fmt.Errorf("%w: failed to get office: %v", ErrInternal, err)
	}

	// Удаленный офис недоступен для бронирования, как и несуществующий
	if office.Deleted {
		uc.logger.Warn("CreateReservation: office %s is deleted", req.OfficeID)
		return nil, ErrOfficeNotFound
	}

	// 4. Вычисляем множитель спроса до транзакции:
	// он читает только статистику визитов и не участвует в гонке
	multiplier, err := uc.pricingService.ComputeMultiplier(ctx, startDate, endDate)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to compute multiplier: %v", err)
		return nil, fmt.Errorf("%w: failed to compute price multiplier: %v", ErrInternal, err)
	}

	comments := ""
	if req.Comments != nil {
		comments = *req.Comments
	}

	var result *domain.Reservation

	// 5. Сериализуемая транзакция: проверка пересечений + вставка
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		exists, err := uc.reservationRepo.ExistsOverlapping(txCtx, req.OfficeID, startDate, endDate, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check overlapping reservations: %v", err)
			return fmt.Errorf("%w: failed to check overlapping reservations: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("CreateReservation: office %s is already reserved in %s..%s",
				req.OfficeID, startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))
			return ErrOverlap
		}

		reservation := &domain.Reservation{
			OfficeID:        req.OfficeID,
			UserID:          req.UserID,
			StartDate:       startDate,
			EndDate:         endDate,
			BookedAt:        domain.DateOnly(now),
			PricePerDay:     office.Price,
			PriceMultiplier: multiplier,
			Status:          domain.StatusPending,
			PaymentType:     domain.PaymentType(req.PaymentType),
			Comments:        comments,
		}
		reservation.Recalculate()

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	if result == nil || result.ID == "" {
		uc.logger.Error("CreateReservation: reservation was not persisted")
		return nil, fmt.Errorf("%w: reservation was not persisted", ErrInternal)
	}

	uc.logger.Info("CreateReservation: created id=%s, total=%.2f, multiplier=%.4f",
		result.ID, result.TotalPrice, result.PriceMultiplier)

	return toResponse(result), nil
}

// toResponse конвертирует domain модель в ответ use case
func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:              r.ID,
		OfficeID:        r.OfficeID,
		UserID:          r.UserID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		BookedAt:        r.BookedAt,
		PricePerDay:     r.PricePerDay,
		PriceMultiplier: r.PriceMultiplier,
		TotalPrice:      r.TotalPrice,
		DurationDays:    r.DurationDays,
		Status:          string(r.Status),
		PaymentType:     string(r.PaymentType),
		Paid:            r.Paid,
		Comments:        r.Comments,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
