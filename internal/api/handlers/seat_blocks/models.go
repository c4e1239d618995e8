package seat_blocks

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/seatblocks"
)

// CreateSeatBlockRequest HTTP request model
// Без seatId блокируется вся площадка
type CreateSeatBlockRequest struct {
	SeatID  *int64 `json:"seatId,omitempty"`
	StartAt string `json:"startAt"` // RFC 3339
	EndAt   string `json:"endAt"`   // RFC 3339
	Reason  string `json:"reason"`
}

// SeatBlockResponse HTTP response model
type SeatBlockResponse struct {
	ID        int64  `json:"id"`
	VenueID   int64  `json:"venueId"`
	SeatID    *int64 `json:"seatId,omitempty"`
	StartAt   string `json:"startAt"`
	EndAt     string `json:"endAt"`
	Reason    string `json:"reason"`
	CreatedBy int64  `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSeatBlockRequest) ToServiceRequest(venueID, userID int64) (*seatblocks.CreateRequest, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}
	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	return &seatblocks.CreateRequest{
		VenueID: venueID,
		UserID:  userID,
		SeatID:  r.SeatID,
		StartAt: startAt,
		EndAt:   endAt,
		Reason:  r.Reason,
	}, nil
}

// FromDomain конвертирует блокировку в HTTP response
func FromDomain(b *domain.SeatBlock) *SeatBlockResponse {
	return &SeatBlockResponse{
		ID:        b.ID,
		VenueID:   b.VenueID,
		SeatID:    b.SeatID,
		StartAt:   b.StartAt.UTC().Format(time.RFC3339),
		EndAt:     b.EndAt.UTC().Format(time.RFC3339),
		Reason:    b.Reason,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// FromDomainList конвертирует список блокировок
func FromDomainList(blocks []*domain.SeatBlock) []*SeatBlockResponse {
	out := make([]*SeatBlockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, FromDomain(b))
	}
	return out
}
