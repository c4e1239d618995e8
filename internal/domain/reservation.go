package domain

import "time"

// ReservationStatus статус бронирования
// Отмена это переход статуса, бронирования физически не удаляются
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation бронирование места (SeatID) или стола целиком (TableID)
// Если не задано ни то, ни другое, бронь учитывается только по вместимости площадки
type Reservation struct {
	ID        int64
	VenueID   int64
	UserID    int64
	SeatID    *int64
	TableID   *int64
	StartAt   time.Time // UTC
	EndAt     time.Time // UTC
	SeatCount int
	Status    ReservationStatus
	Notes     *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true для неотмененного бронирования
func (r *Reservation) IsActive() bool {
	return r.Status != ReservationCancelled
}

// IsGroup бронь стола целиком
func (r *Reservation) IsGroup() bool {
	return r.SeatID == nil && r.TableID != nil
}

// Overlaps проверяет пересечение полуинтервалов [StartAt, EndAt) и [start, end)
// Касание концами пересечением не считается
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return Overlaps(r.StartAt, r.EndAt, start, end)
}

// Overlaps пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// VenueReservationsFilter фильтр бронирований площадки
type VenueReservationsFilter struct {
	VenueID          int64              // Обязательный параметр
	From             *time.Time         // Бронирования, заканчивающиеся после From
	To               *time.Time         // Бронирования, начинающиеся до To
	Status           *ReservationStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool
	ExcludeID        *int64 // Исключить бронирование (при редактировании)
}
