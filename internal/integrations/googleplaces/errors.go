package googleplaces

import "errors"

var (
	// ErrPlaceNotFound возвращается, когда Google не знает place id
	ErrPlaceNotFound = errors.New("googleplaces client: place not found")

	// ErrNoOpeningHours возвращается, когда у места нет расписания
	ErrNoOpeningHours = errors.New("googleplaces client: place has no opening hours")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("googleplaces client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("googleplaces client: invalid response")
)

// ErrDisabled возвращается, когда интеграция выключена в конфигурации
var ErrDisabled = errors.New("googleplaces client: integration disabled")
