package update_reservation

import (
	"time"

	updateReservation "github.com/m04kA/SMC-VenueBookingService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model, все поля опциональны
type UpdateReservationRequest struct {
	StartAt   *string `json:"startAt,omitempty"`
	EndAt     *string `json:"endAt,omitempty"`
	SeatID    *int64  `json:"seatId,omitempty"`
	TableID   *int64  `json:"tableId,omitempty"`
	SeatCount *int    `json:"seatCount,omitempty"`
	Notes     *string `json:"notes,omitempty"`

	// ClearResource снимает привязку к месту и столу
	ClearResource bool `json:"clearResource,omitempty"`
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
	UpdatedAt string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID, userID int64) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		ReservationID: reservationID,
		UserID:        userID,
		SeatID:        r.SeatID,
		TableID:       r.TableID,
		SeatCount:     r.SeatCount,
		Notes:         r.Notes,
		ClearResource: r.ClearResource,
	}

	if r.StartAt != nil {
		startAt, err := time.Parse(time.RFC3339, *r.StartAt)
		if err != nil {
			return nil, err
		}
		req.StartAt = &startAt
	}

	if r.EndAt != nil {
		endAt, err := time.Parse(time.RFC3339, *r.EndAt)
		if err != nil {
			return nil, err
		}
		req.EndAt = &endAt
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
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
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
