package get_venue_hours

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type HoursService interface {
	GetCanonicalHours(ctx context.Context, venueID int64) (*domain.CanonicalVenueHours, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
