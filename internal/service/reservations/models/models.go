package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             int64   `json:"userId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetVenueReservationsRequest запрос на получение бронирований площадки
type GetVenueReservationsRequest struct {
	UserID           int64      `json:"userId"`
	VenueID          int64      `json:"venueId"`
	From             *time.Time `json:"from,omitempty"`   // Начало периода (опционально)
	To               *time.Time `json:"to,omitempty"`     // Конец периода (опционально)
	Status           *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueReservationsRequest) ToDomainFilter() (domain.VenueReservationsFilter, error) {
	filter := domain.VenueReservationsFilter{
		VenueID:          r.VenueID,
		From:             r.From,
		To:               r.To,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venueId"`
	UserID    int64     `json:"userId"`
	SeatID    *int64    `json:"seatId,omitempty"`
	TableID   *int64    `json:"tableId,omitempty"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	SeatCount int       `json:"seatCount"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		VenueID:            r.VenueID,
		UserID:             r.UserID,
		SeatID:             r.SeatID,
		TableID:            r.TableID,
		StartAt:            r.StartAt,
		EndAt:              r.EndAt,
		SeatCount:          r.SeatCount,
		Status:             string(r.Status),
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	switch s := domain.ReservationStatus(status); s {
	case domain.ReservationActive, domain.ReservationCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
