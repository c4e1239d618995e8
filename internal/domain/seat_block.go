package domain

import "time"

// SeatBlock административная блокировка места
// SeatID == nil означает блокировку всей площадки
type SeatBlock struct {
	ID        int64
	VenueID   int64
	SeatID    *int64
	StartAt   time.Time
	EndAt     time.Time
	Reason    string
	CreatedBy int64

	CreatedAt time.Time
}

// IsVenueWide блокирует всю площадку
func (b *SeatBlock) IsVenueWide() bool {
	return b.SeatID == nil
}

// Overlaps проверяет пересечение с [start, end)
func (b *SeatBlock) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartAt, b.EndAt, start, end)
}
