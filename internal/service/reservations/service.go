package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	reservationstorage "github.com/officely-app/Officely-BookingService/internal/infra/storage/reservation"
	"github.com/officely-app/Officely-BookingService/internal/service/reservations/models"
)

// Service управляет жизненным циклом бронирований после их создания:
// просмотр, выборка с фильтрацией, обновление, отмена, оплата
type Service struct {
	repo         ReservationRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// New создает новый сервис бронирований
func New(repo ReservationRepository, txManager TransactionManager, timeProvider TimeProvider, logger Logger) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &Service{
		repo:         repo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID возвращает бронирование по идентификатору.
// Обычный пользователь видит только свои бронирования,
// администратор — любые
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id string) (*models.ReservationResponse, error) {
	reservation, err := s.fetchScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainReservation(reservation), nil
}

// List возвращает страницу бронирований с фильтрацией и сортировкой.
// Для обычного пользователя выборка ограничена его бронированиями
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	sortField, err := req.SortField()
	if err != nil {
		return nil, fmt.Errorf("%w: unknown sort field %q", ErrInvalidInput, *req.SortBy)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}

	// Администратор видит бронирования всех пользователей
	var userID *string
	if !req.Actor.Admin {
		id := req.Actor.UserID
		userID = &id
	}

	reservations, err := s.repo.GetWithFilter(ctx, userID, req.Filter, sortField, req.Ascending, page, pageSize)
	if err != nil {
		s.logger.Error("List: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations", ErrInternal)
	}

	return models.FromDomainReservationList(reservations), nil
}

// Update изменяет даты и/или комментарий бронирования.
// Владелец может редактировать только PENDING бронирования,
// администратор — в любом статусе. Смена дат проходит проверку
// пересечений в serializable транзакции; множитель цены,
// зафиксированный при создании, не пересчитывается
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateReservationRequest) (*models.ReservationResponse, error) {
	reservation, err := s.fetchScoped(ctx, req.Actor, id)
	if err != nil {
		return nil, err
	}

	if !req.Actor.CanEditAnyStatus() && !reservation.CanBeUpdated() {
		s.logger.Warn("Update: reservation %s is not pending, status=%s", id, reservation.Status)
		return nil, ErrNotPending
	}

	if req.Comments != nil {
		if len(*req.Comments) > domain.MaxCommentsLength {
			return nil, fmt.Errorf("%w: comments exceed %d characters", ErrInvalidInput, domain.MaxCommentsLength)
		}
		reservation.Comments = *req.Comments
	}

	// Отсутствующая граница означает "оставить как есть"
	newStart := reservation.StartDate
	newEnd := reservation.EndDate
	if req.StartDate != nil {
		newStart = domain.DateOnly(*req.StartDate)
	}
	if req.EndDate != nil {
		newEnd = domain.DateOnly(*req.EndDate)
	}

	datesChanged := !newStart.Equal(reservation.StartDate) || !newEnd.Equal(reservation.EndDate)

	if datesChanged {
		today := domain.DateOnly(s.timeProvider.Now())
		if newStart.Before(today) || newEnd.Before(today) {
			return nil, ErrDateInPast
		}
		if !newStart.Before(newEnd) {
			return nil, ErrInvalidDates
		}

		// Проверка пересечений и запись идут в одной serializable
		// транзакции, иначе две конкурентные смены дат могут обе
		// пройти проверку и пересечься
		err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
			exists, err := s.repo.ExistsOverlapping(ctx, reservation.OfficeID, newStart, newEnd, &reservation.ID)
			if err != nil {
				return fmt.Errorf("%w: failed to check overlapping reservations: %v", ErrInternal, err)
			}
			if exists {
				return ErrOverlap
			}

			reservation.SetDates(newStart, newEnd)

			if err := s.repo.Update(ctx, reservation); err != nil {
				return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
			}

			return nil
		})
	} else {
		err = s.repo.Update(ctx, reservation)
		if err != nil {
			err = fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}
	}

	if err != nil {
		if errors.Is(err, ErrOverlap) {
			s.logger.Warn("Update: reservation %s overlaps with another reservation", id)
			return nil, ErrOverlap
		}
		s.logger.Error("Update: failed to update reservation %s: %v", id, err)
		return nil, err
	}

	s.logger.Info("Update: reservation %s updated", id)

	return models.FromDomainReservation(reservation), nil
}

// Cancel отменяет бронирование. Отмена освобождает диапазон дат
// для новых бронирований; повторная отмена недопустима
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id string) error {
	reservation, err := s.fetchScoped(ctx, actor, id)
	if err != nil {
		return err
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation %s is already cancelled", id)
		return ErrAlreadyCancelled
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		if errors.Is(err, reservationstorage.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: failed to cancel reservation %s: %v", id, err)
		return fmt.Errorf("%w: failed to cancel reservation", ErrInternal)
	}

	s.logger.Info("Cancel: reservation %s cancelled", id)

	return nil
}

// Pay помечает бронирование оплаченным онлайн. Оплата возможна
// только владельцем, только для PENDING бронирований с безналичным
// способом оплаты и только один раз
func (s *Service) Pay(ctx context.Context, actor domain.Actor, id string) (*models.ReservationResponse, error) {
	reservation, err := s.repo.GetByIDAndUser(ctx, id, actor.UserID)
	if err != nil {
		if errors.Is(err, reservationstorage.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Pay: failed to get reservation %s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation", ErrInternal)
	}

	if reservation.Paid {
		return nil, ErrAlreadyPaid
	}
	if reservation.PaymentType == domain.PaymentCash {
		return nil, ErrCashPayment
	}
	if reservation.Status != domain.StatusPending {
		return nil, ErrNotPending
	}

	paidAt := domain.DateOnly(s.timeProvider.Now())

	if err := s.repo.MarkPaid(ctx, id, paidAt); err != nil {
		if errors.Is(err, reservationstorage.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Pay: failed to mark reservation %s as paid: %v", id, err)
		return nil, fmt.Errorf("%w: failed to mark reservation as paid", ErrInternal)
	}

	reservation.Paid = true
	reservation.PaidAt = &paidAt

	s.logger.Info("Pay: reservation %s paid", id)

	return models.FromDomainReservation(reservation), nil
}

// fetchScoped загружает бронирование с учетом прав доступа:
// администратор получает любое бронирование, пользователь — только свое
func (s *Service) fetchScoped(ctx context.Context, actor domain.Actor, id string) (*domain.Reservation, error) {
	var (
		reservation *domain.Reservation
		err         error
	)

	if actor.Admin {
		reservation, err = s.repo.GetByID(ctx, id)
	} else {
		reservation, err = s.repo.GetByIDAndUser(ctx, id, actor.UserID)
	}

	if err != nil {
		if errors.Is(err, reservationstorage.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("fetchScoped: failed to get reservation %s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation", ErrInternal)
	}

	return reservation, nil
}
