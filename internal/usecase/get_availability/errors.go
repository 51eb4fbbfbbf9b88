package get_availability

import "errors"

var (
	// ErrOfficeNotFound возвращается, когда офис не найден или удален
	ErrOfficeNotFound = errors.New("get_availability: office not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
