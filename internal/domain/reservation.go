package domain

import (
	"math"
	"time"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusOngoing   ReservationStatus = "ONGOING"
	StatusCompleted ReservationStatus = "COMPLETED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// PaymentType represents the payment method chosen for a reservation
type PaymentType string

const (
	PaymentCash     PaymentType = "CASH"
	PaymentCard     PaymentType = "CARD"
	PaymentTransfer PaymentType = "TRANSFER"
	PaymentBlik     PaymentType = "BLIK"
)

// Reservation represents an office reservation over an inclusive date range
type Reservation struct {
	ID       string
	OfficeID string
	UserID   string

	StartDate time.Time
	EndDate   time.Time
	BookedAt  time.Time

	PricePerDay     float64
	PriceMultiplier float64
	TotalPrice      float64 // derived, recomputed on every date/price change
	DurationDays    int64   // derived, whole days between start and end

	Status      ReservationStatus
	PaymentType PaymentType
	Paid        bool
	PaidAt      *time.Time
	Comments    string
	Deleted     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetDates replaces both bounds and recomputes duration and total price
func (r *Reservation) SetDates(start, end time.Time) {
	r.StartDate = start
	r.EndDate = end
	r.Recalculate()
}

// SetPricePerDay replaces the daily price and recomputes the total price
func (r *Reservation) SetPricePerDay(price float64) {
	r.PricePerDay = price
	r.Recalculate()
}

// Recalculate recomputes the derived fields:
// durationDays = endDate - startDate in whole days,
// totalPrice = round2(durationDays * pricePerDay * priceMultiplier),
// zero when duration or pricePerDay is not positive
func (r *Reservation) Recalculate() {
	r.DurationDays = DaysBetween(r.StartDate, r.EndDate)

	if r.DurationDays > 0 && r.PricePerDay > 0 {
		r.TotalPrice = Round2(float64(r.DurationDays) * r.PricePerDay * r.PriceMultiplier)
	} else {
		r.TotalPrice = 0
	}
}

// IsActive returns true if the reservation still blocks its date range
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// CanBeUpdated returns true if the owner may still edit the reservation
func (r *Reservation) CanBeUpdated() bool {
	return r.Status == StatusPending
}

// CanBeCancelled returns true if the reservation is not cancelled yet
func (r *Reservation) CanBeCancelled() bool {
	return r.Status != StatusCancelled
}

// CanBePaid returns true if an online payment is still possible:
// not paid yet, status PENDING and payment type is not CASH
func (r *Reservation) CanBePaid() bool {
	return !r.Paid && r.Status == StatusPending && r.PaymentType != PaymentCash
}

// Overlaps reports whether the reservation conflicts with [start, end].
// Boundary touch counts as a conflict: a reservation ending on day N
// conflicts with one starting on day N.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// CoversDay reports whether the given day falls inside [startDate, endDate]
func (r *Reservation) CoversDay(day time.Time) bool {
	return r.Overlaps(day, day)
}

// Round2 rounds a price to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DaysBetween returns the number of whole days from a to b
func DaysBetween(a, b time.Time) int64 {
	return int64(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// DateOnly truncates a timestamp to midnight of the same day
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ReservationFilter фильтр для выборки бронирований
// Все поля опциональны, nil означает отсутствие ограничения
type ReservationFilter struct {
	Paid            *bool
	PriceTotalMin   *float64
	PriceTotalMax   *float64
	PricePerDayMin  *float64
	PricePerDayMax  *float64
	PaymentType     *PaymentType
	Status          *ReservationStatus
	BookedAtFrom    *time.Time
	BookedAtTo      *time.Time
	StartDateFrom   *time.Time
	StartDateTo     *time.Time
	EndDateFrom     *time.Time
	EndDateTo       *time.Time
}

// ReservationSortField поле сортировки списка бронирований
type ReservationSortField string

const (
	ReservationSortDuration    ReservationSortField = "duration"
	ReservationSortDate        ReservationSortField = "date"
	ReservationSortPriceTotal  ReservationSortField = "priceTotal"
	ReservationSortPricePerDay ReservationSortField = "pricePerDay"
	ReservationSortPaymentType ReservationSortField = "paymentType"
	ReservationSortStatus      ReservationSortField = "status"
	ReservationSortPaid        ReservationSortField = "paid"
	ReservationSortBookedAt    ReservationSortField = "bookedAt"
)

// reservationSortColumns отображение полей сортировки на колонки таблицы
var reservationSortColumns = map[ReservationSortField]string{
	ReservationSortDuration:    "duration_days",
	ReservationSortDate:        "start_date",
	ReservationSortPriceTotal:  "total_price",
	ReservationSortPricePerDay: "price_per_day",
	ReservationSortPaymentType: "payment_type",
	ReservationSortStatus:      "status",
	ReservationSortPaid:        "paid",
	ReservationSortBookedAt:    "booked_at",
}

// Column returns the SQL column for the sort field and whether the field is known
func (f ReservationSortField) Column() (string, bool) {
	column, ok := reservationSortColumns[f]
	return column, ok
}
