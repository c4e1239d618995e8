package update_reservation

import "time"

// Request модель запроса на изменение бронирования
// Незаданные поля не меняются. Новое место снимает привязку к столу и наоборот.
// ClearResource снимает обе привязки: бронь становится бронью вместимости площадки.
type Request struct {
	ReservationID int64 // ID бронирования
	UserID        int64 // ID сотрудника, выполняющего изменение

	StartAt   *time.Time
	EndAt     *time.Time
	SeatID    *int64
	TableID   *int64
	SeatCount *int
	Notes     *string

	ClearResource bool
}

// Response модель ответа с обновленным бронированием
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
