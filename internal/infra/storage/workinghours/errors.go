package workinghours

import "errors"

var (
	// ErrNotWorking возвращается, когда у специалиста нет рабочих часов в этот день недели
	ErrNotWorking = errors.New("workinghours.repository: professional does not work on this weekday")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("workinghours.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("workinghours.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("workinghours.repository: failed to scan row")
)
