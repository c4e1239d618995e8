package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда пользователь не управляет площадкой
	ErrAccessDenied = errors.New("update_reservation: access denied")

	// ErrNotActive возвращается при попытке изменить отмененное бронирование
	ErrNotActive = errors.New("update_reservation: reservation is not active")

	// ErrSeatsNotAvailable возвращается, когда места заняты на новое время
	ErrSeatsNotAvailable = errors.New("update_reservation: seats not available for that time")

	// ErrCapacityExceeded возвращается, когда запрошено больше мест, чем вмещает площадка или стол
	ErrCapacityExceeded = errors.New("update_reservation: requested seats exceed venue capacity")

	// ErrStartInPast возвращается при переносе начала в прошлое
	ErrStartInPast = errors.New("update_reservation: start time is in the past")

	// ErrTooLong возвращается, когда бронирование длиннее допустимого
	ErrTooLong = errors.New("update_reservation: reservation is too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
