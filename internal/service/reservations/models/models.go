package models

import (
	"errors"
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidPaymentType возвращается при некорректном способе оплаты
	ErrInvalidPaymentType = errors.New("invalid payment type")

	// ErrInvalidSortField возвращается при некорректном поле сортировки
	ErrInvalidSortField = errors.New("invalid sort field")
)

// Request модели

// UpdateReservationRequest запрос на обновление бронирования
// nil-поля не изменяются; смена дат пересчитывает производные поля,
// но не множитель цены (он фиксируется при создании)
type UpdateReservationRequest struct {
	Actor     domain.Actor
	StartDate *time.Time
	EndDate   *time.Time
	Comments  *string
}

// ListReservationsRequest запрос на получение списка бронирований
// Для обычного пользователя выборка ограничена его бронированиями,
// администратор видит бронирования всех пользователей
type ListReservationsRequest struct {
	Actor     domain.Actor
	Filter    domain.ReservationFilter
	SortBy    *string
	Ascending bool
	Page      int
	PageSize  int
}

// SortField валидирует и конвертирует поле сортировки
func (r *ListReservationsRequest) SortField() (*domain.ReservationSortField, error) {
	if r.SortBy == nil {
		return nil, nil
	}
	field := domain.ReservationSortField(*r.SortBy)
	if _, ok := field.Column(); !ok {
		return nil, ErrInvalidSortField
	}
	return &field, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              string  `json:"id"`
	OfficeID        string  `json:"officeId"`
	UserID          string  `json:"userId"`
	StartDate       string  `json:"startDate"` // "2025-06-01"
	EndDate         string  `json:"endDate"`
	BookedAt        string  `json:"bookedAt"`
	PricePerDay     float64 `json:"pricePerDay"`
	PriceMultiplier float64 `json:"priceMultiplier"`
	TotalPrice      float64 `json:"totalPrice"`
	DurationDays    int64   `json:"durationDays"`
	Status          string  `json:"status"`
	PaymentType     string  `json:"paymentType"`
	Paid            bool    `json:"paid"`
	PaidAt          *string `json:"paidAt,omitempty"`
	Comments        string  `json:"comments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              r.ID,
		OfficeID:        r.OfficeID,
		UserID:          r.UserID,
		StartDate:       r.StartDate.Format(domain.DateFormat),
		EndDate:         r.EndDate.Format(domain.DateFormat),
		BookedAt:        r.BookedAt.Format(domain.DateFormat),
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

	if r.PaidAt != nil {
		paidAt := r.PaidAt.Format(domain.DateFormat)
		resp.PaidAt = &paidAt
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, reservation := range reservations {
		if dto := FromDomainReservation(reservation); dto != nil {
			resp.Reservations = append(resp.Reservations, *dto)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainPaymentType конвертирует строку в domain.PaymentType с валидацией
func ToDomainPaymentType(paymentType string) (domain.PaymentType, error) {
	p := domain.PaymentType(paymentType)
	if !domain.IsValidPaymentType(p) {
		return "", ErrInvalidPaymentType
	}
	return p, nil
}
