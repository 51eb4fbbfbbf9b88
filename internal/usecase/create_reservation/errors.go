package create_reservation

import "errors"

var (
	// ErrOfficeNotFound возвращается, когда офис не найден или удален
	ErrOfficeNotFound = errors.New("create_reservation: office not found")

	// ErrDateInPast возвращается, когда дата бронирования в прошлом
	ErrDateInPast = errors.New("create_reservation: reservation dates cannot be in the past")

	// ErrInvalidDates возвращается, когда дата начала не раньше даты окончания
	ErrInvalidDates = errors.New("create_reservation: start date must be before end date")

	// ErrOverlap возвращается, когда диапазон дат пересекается с существующим бронированием
	ErrOverlap = errors.New("create_reservation: reservation dates overlap with another reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
