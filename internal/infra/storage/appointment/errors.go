package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrOverlap возвращается, когда интервал пересекается с активной записью специалиста
	ErrOverlap = errors.New("appointment.repository: interval overlaps an active appointment")

	// ErrStatusMismatch возвращается, когда статус записи изменился с момента чтения
	ErrStatusMismatch = errors.New("appointment.repository: appointment status changed concurrently")

	// ErrSerialization возвращается, когда Postgres отменил сериализуемую транзакцию
	ErrSerialization = errors.New("appointment.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
