package get_availability

import (
	"github.com/officely-app/Officely-BookingService/internal/domain"
	getAvailability "github.com/officely-app/Officely-BookingService/internal/usecase/get_availability"
)

// AvailableDayResponse свободный день с множителем цены
type AvailableDayResponse struct {
	Date            string  `json:"date"` // "2025-06-01"
	PriceMultiplier float64 `json:"priceMultiplier"`
}

// AvailabilityResponse календарь доступности офиса за месяц
type AvailabilityResponse struct {
	OfficeID string                 `json:"officeId"`
	Month    string                 `json:"month"` // "2025-06"
	Days     []AvailableDayResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель,
// материализуя ленивую последовательность дней
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]AvailableDayResponse, 0)
	for day := range resp.Days {
		days = append(days, AvailableDayResponse{
			Date:            day.Date.Format(domain.DateFormat),
			PriceMultiplier: day.PriceMultiplier,
		})
	}

	return &AvailabilityResponse{
		OfficeID: resp.OfficeID,
		Month:    resp.MonthStart.Format(domain.MonthFormat),
		Days:     days,
	}
}
