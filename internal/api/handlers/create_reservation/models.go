package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SeatID    *int64  `json:"seatId,omitempty"`
	TableID   *int64  `json:"tableId,omitempty"`
	StartAt   string  `json:"startAt"` // RFC 3339, "2025-06-02T18:00:00+03:00"
	EndAt     string  `json:"endAt"`
	SeatCount int     `json:"seatCount"`
	Notes     *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID        int64   `json:"id"`
	VenueID   int64   `json:"venueId"`
	UserID    int64   `json:"userId"`
	SeatID    *int64  `json:"seatId,omitempty"`
	TableID   *int64  `json:"tableId,omitempty"`
	StartAt   string  `json:"startAt"`
	EndAt     string  `json:"endAt"`
	SeatCount int     `json:"seatCount"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(venueID, userID int64) (*createReservation.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	seatCount := r.SeatCount
	if seatCount == 0 {
		seatCount = 1
	}

	return &createReservation.Request{
		UserID:    userID,
		VenueID:   venueID,
		SeatID:    r.SeatID,
		TableID:   r.TableID,
		StartAt:   startAt,
		EndAt:     endAt,
		SeatCount: seatCount,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:        resp.ID,
		VenueID:   resp.VenueID,
		UserID:    resp.UserID,
		SeatID:    resp.SeatID,
		TableID:   resp.TableID,
		StartAt:   resp.StartAt.UTC().Format(time.RFC3339),
		EndAt:     resp.EndAt.UTC().Format(time.RFC3339),
		SeatCount: resp.SeatCount,
		Status:    resp.Status,
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
