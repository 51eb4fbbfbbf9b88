package domain

// Pricing constants
const (
	// PricingImpact scales how strongly the demand z-score moves the price
	PricingImpact = 0.5

	// MinPriceMultiplier caps discounts at 50% of the base price.
	// There is no upper cap on the multiplier.
	MinPriceMultiplier = 0.5

	// NeutralMultiplier is returned when there is no usable traffic signal
	NeutralMultiplier = 1.0
)

// Business validation constants
const (
	MaxCommentsLength = 500
	MaxPageSize       = 100
	DefaultPageSize   = 20
)

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// ValidStatuses список допустимых статусов бронирования
var ValidStatuses = []ReservationStatus{
	StatusPending,
	StatusOngoing,
	StatusCompleted,
	StatusCancelled,
}

// ValidPaymentTypes список допустимых способов оплаты
var ValidPaymentTypes = []PaymentType{
	PaymentCash,
	PaymentCard,
	PaymentTransfer,
	PaymentBlik,
}

// IsValidStatus reports whether the status is one of the known lifecycle states
func IsValidStatus(s ReservationStatus) bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// IsValidPaymentType reports whether the payment type is supported
func IsValidPaymentType(p PaymentType) bool {
	for _, valid := range ValidPaymentTypes {
		if p == valid {
			return true
		}
	}
	return false
}
