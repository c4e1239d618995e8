package sync_venue_hours

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/hours"
)

type HoursService interface {
	SyncVenueHoursFromGoogle(ctx context.Context, venueID int64) (*hours.SyncResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
