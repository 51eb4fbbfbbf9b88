package office

import "errors"

var (
	// ErrOfficeNotFound возвращается, когда офис не найден
	ErrOfficeNotFound = errors.New("office.repository: office not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("office.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("office.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("office.repository: failed to scan row")
)
