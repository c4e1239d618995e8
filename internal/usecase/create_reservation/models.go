package create_reservation

import "time"

// Request модель запроса на создание бронирования
// Если SeatID и TableID не заданы, бронь учитывается по вместимости площадки
type Request struct {
	UserID    int64     // ID пользователя
	VenueID   int64     // ID площадки
	SeatID    *int64    // Конкретное место (опционально)
	TableID   *int64    // Стол целиком (опционально)
	StartAt   time.Time // Начало, абсолютное время
	EndAt     time.Time // Конец, не включается
	SeatCount int       // Количество мест
	Notes     *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	VenueID   int64
	UserID    int64
	SeatID    *int64
	TableID   *int64
	StartAt   time.Time
	EndAt     time.Time
	SeatCount int
	Status    string
	Notes     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
