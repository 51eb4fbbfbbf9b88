package create_reservation

import (
	"fmt"
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.OfficeID == "" {
		return fmt.Errorf("%w: officeID is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}

	if !domain.IsValidPaymentType(domain.PaymentType(req.PaymentType)) {
		return fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, req.PaymentType)
	}

	if req.Comments != nil && len(*req.Comments) > domain.MaxCommentsLength {
		return fmt.Errorf("%w: comments exceed %d characters", ErrInvalidInput, domain.MaxCommentsLength)
	}

	return nil
}

// validateDates проверяет даты бронирования: обе границы не в прошлом,
// начало строго раньше окончания
func validateDates(startDate, endDate, now time.Time) error {
	today := domain.DateOnly(now)

	if startDate.Before(today) || endDate.Before(today) {
		return ErrDateInPast
	}

	if !startDate.Before(endDate) {
		return ErrInvalidDates
	}

	return nil
}
