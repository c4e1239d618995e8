package seatblocks

import "errors"

var (
	// ErrSeatBlockNotFound возвращается, когда блокировка не найдена
	ErrSeatBlockNotFound = errors.New("seatblocks: seat block not found")

	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("seatblocks: venue not found")

	// ErrAccessDenied возвращается, когда пользователь не управляет площадкой
	ErrAccessDenied = errors.New("seatblocks: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("seatblocks: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("seatblocks: internal error")
)
