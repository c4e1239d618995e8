package set_manual_hours

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

type HoursService interface {
	SetManualHours(ctx context.Context, venueID, userID int64, rows []domain.WeeklyHoursRow) (*domain.CanonicalVenueHours, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
