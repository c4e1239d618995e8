package create_reservation

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time, maxMinutes int) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	if req.SeatCount < domain.MinSeatCount {
		return fmt.Errorf("%w: seatCount must be at least %d", ErrInvalidInput, domain.MinSeatCount)
	}

	if req.SeatID != nil && req.TableID != nil {
		return fmt.Errorf("%w: seatId and tableId are mutually exclusive", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.StartAt.Before(now) {
		return ErrStartInPast
	}

	if maxMinutes > 0 && req.EndAt.Sub(req.StartAt) > time.Duration(maxMinutes)*time.Minute {
		return fmt.Errorf("%w: at most %d minutes", ErrTooLong, maxMinutes)
	}

	return nil
}
