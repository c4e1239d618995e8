// Package queue публикует события бронирований в RabbitMQ
package queue

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// EventType тип события, он же routing key
type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationUpdated   EventType = "reservation.updated"
	EventReservationCancelled EventType = "reservation.cancelled"
)

// ReservationEvent событие изменения бронирования
type ReservationEvent struct {
	Type          EventType `json:"type"`
	ReservationID int64     `json:"reservationId"`
	VenueID       int64     `json:"venueId"`
	UserID        int64     `json:"userId"`
	SeatID        *int64    `json:"seatId,omitempty"`
	TableID       *int64    `json:"tableId,omitempty"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	SeatCount     int       `json:"seatCount"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewReservationEvent собирает событие из бронирования
func NewReservationEvent(eventType EventType, r *domain.Reservation, now time.Time) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID,
		VenueID:       r.VenueID,
		UserID:        r.UserID,
		SeatID:        r.SeatID,
		TableID:       r.TableID,
		StartAt:       r.StartAt.UTC(),
		EndAt:         r.EndAt.UTC(),
		SeatCount:     r.SeatCount,
		Status:        string(r.Status),
		OccurredAt:    now.UTC(),
	}
}
