package seatblocks

import "time"

// CreateRequest запрос на блокировку места или всей площадки
type CreateRequest struct {
	VenueID int64
	UserID  int64
	SeatID  *int64 // nil блокирует всю площадку
	StartAt time.Time
	EndAt   time.Time
	Reason  string
}

// ListRequest запрос списка блокировок площадки за период
type ListRequest struct {
	VenueID int64
	UserID  int64
	From    *time.Time
	To      *time.Time
}
