package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	// или не принадлежит пользователю
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAlreadyCancelled возвращается при повторной отмене бронирования
	ErrAlreadyCancelled = errors.New("reservation is already cancelled")

	// ErrAlreadyPaid возвращается при повторной оплате бронирования
	ErrAlreadyPaid = errors.New("reservation is already paid")

	// ErrCashPayment возвращается при попытке онлайн-оплаты наличного бронирования
	ErrCashPayment = errors.New("cash reservations cannot be paid online")

	// ErrNotPending возвращается, когда операция требует статуса PENDING
	ErrNotPending = errors.New("reservation must be pending")

	// ErrDateInPast возвращается, когда даты бронирования в прошлом
	ErrDateInPast = errors.New("reservation dates cannot be in the past")

	// ErrInvalidDates возвращается, когда дата начала не раньше даты окончания
	ErrInvalidDates = errors.New("start date must be before end date")

	// ErrOverlap возвращается, когда новые даты пересекаются с другим бронированием
	ErrOverlap = errors.New("reservation dates overlap with another reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
