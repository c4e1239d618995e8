package hours

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("hours: venue not found")

	// ErrAccessDenied возвращается, когда пользователь не управляет площадкой
	ErrAccessDenied = errors.New("hours: access denied")

	// ErrNoGooglePlace возвращается, когда площадка не привязана к Google Places
	ErrNoGooglePlace = errors.New("hours: venue has no google place id")

	// ErrGoogleUnavailable возвращается, когда не удалось получить часы из Google
	ErrGoogleUnavailable = errors.New("hours: google places unavailable")

	// ErrInvalidInput возвращается при некорректном расписании
	ErrInvalidInput = errors.New("hours: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("hours: internal error")
)
