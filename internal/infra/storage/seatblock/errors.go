package seatblock

import "errors"

var (
	// ErrSeatBlockNotFound возвращается, когда блокировка не найдена
	ErrSeatBlockNotFound = errors.New("seatblock.repository: seat block not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("seatblock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("seatblock.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("seatblock.repository: failed to scan row")
)
