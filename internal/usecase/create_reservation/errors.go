package create_reservation

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_reservation: venue not found")

	// ErrSeatsNotAvailable возвращается, когда места заняты на это время
	// (в том числе при проигранной гонке за место на уровне БД)
	ErrSeatsNotAvailable = errors.New("create_reservation: seats not available for that time")

	// ErrCapacityExceeded возвращается, когда запрошено больше мест, чем вмещает площадка или стол
	ErrCapacityExceeded = errors.New("create_reservation: requested seats exceed venue capacity")

	// ErrStartInPast возвращается при попытке забронировать прошедшее время
	ErrStartInPast = errors.New("create_reservation: start time is in the past")

	// ErrTooLong возвращается, когда бронирование длиннее допустимого
	ErrTooLong = errors.New("create_reservation: reservation is too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
