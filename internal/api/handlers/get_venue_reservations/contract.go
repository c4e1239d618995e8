package get_venue_reservations

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetVenueReservations(ctx context.Context, req *models.GetVenueReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
