package create_reservation

import (
	"time"

	"github.com/officely-app/Officely-BookingService/internal/domain"
	createReservation "github.com/officely-app/Officely-BookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	OfficeID    string  `json:"officeId"`
	StartDate   string  `json:"startDate"` // "2025-06-01"
	EndDate     string  `json:"endDate"`   // "2025-06-05"
	PaymentType string  `json:"paymentType"`
	Comments    *string `json:"comments,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              string  `json:"id"`
	OfficeID        string  `json:"officeId"`
	UserID          string  `json:"userId"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	BookedAt        string  `json:"bookedAt"`
	PricePerDay     float64 `json:"pricePerDay"`
	PriceMultiplier float64 `json:"priceMultiplier"`
	TotalPrice      float64 `json:"totalPrice"`
	DurationDays    int64   `json:"durationDays"`
	Status          string  `json:"status"`
	PaymentType     string  `json:"paymentType"`
	Paid            bool    `json:"paid"`
	Comments        string  `json:"comments"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID string) (*createReservation.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:      userID,
		OfficeID:    r.OfficeID,
		StartDate:   startDate,
		EndDate:     endDate,
		PaymentType: r.PaymentType,
		Comments:    r.Comments,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		OfficeID:        resp.OfficeID,
		UserID:          resp.UserID,
		StartDate:       resp.StartDate.Format(domain.DateFormat),
		EndDate:         resp.EndDate.Format(domain.DateFormat),
		BookedAt:        resp.BookedAt.Format(domain.DateFormat),
		PricePerDay:     resp.PricePerDay,
		PriceMultiplier: resp.PriceMultiplier,
		TotalPrice:      resp.TotalPrice,
		DurationDays:    resp.DurationDays,
		Status:          resp.Status,
		PaymentType:     resp.PaymentType,
		Paid:            resp.Paid,
		Comments:        resp.Comments,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
