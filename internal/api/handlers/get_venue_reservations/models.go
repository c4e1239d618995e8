package get_venue_reservations

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
// from/to принимают RFC 3339 или дату YYYY-MM-DD (начало дня UTC); date задает одни сутки
func ToServiceRequest(venueID, userID int64, fromStr, toStr, dateStr, statusStr, includeCancelledStr string) (*models.GetVenueReservationsRequest, error) {
	req := &models.GetVenueReservationsRequest{
		UserID:  userID,
		VenueID: venueID,
	}

	if dateStr != "" {
		day, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		end := day.Add(24 * time.Hour)
		req.From, req.To = &day, &end
	}

	if fromStr != "" {
		from, err := parseMoment(fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := parseMoment(toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}

func parseMoment(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(domain.DateFormat, s)
}
