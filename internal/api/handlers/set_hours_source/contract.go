package set_hours_source

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type HoursService interface {
	SetHoursSource(ctx context.Context, venueID, userID int64, source domain.HoursSource) (*domain.CanonicalVenueHours, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
