package seat_blocks

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/seatblocks"
)

type SeatBlockService interface {
	Create(ctx context.Context, req *seatblocks.CreateRequest) (*domain.SeatBlock, error)
	Delete(ctx context.Context, venueID, blockID, userID int64) error
	ListForVenue(ctx context.Context, req *seatblocks.ListRequest) ([]*domain.SeatBlock, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
