package update_reservation

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StartAt == nil && req.EndAt == nil && req.SeatID == nil &&
		req.TableID == nil && req.SeatCount == nil && req.Notes == nil && !req.ClearResource {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.SeatID != nil && req.TableID != nil {
		return fmt.Errorf("%w: seatId and tableId are mutually exclusive", ErrInvalidInput)
	}

	if req.ClearResource && (req.SeatID != nil || req.TableID != nil) {
		return fmt.Errorf("%w: clearResource cannot be combined with seatId or tableId", ErrInvalidInput)
	}

	if req.SeatCount != nil && *req.SeatCount < domain.MinSeatCount {
		return fmt.Errorf("%w: seatCount must be at least %d", ErrInvalidInput, domain.MinSeatCount)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateResult проверяет бронирование после применения изменений
func validateResult(res *domain.Reservation, startChanged bool, now time.Time, maxMinutes int) error {
	if !res.EndAt.After(res.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	if startChanged && res.StartAt.Before(now) {
		return ErrStartInPast
	}

	if maxMinutes > 0 && res.EndAt.Sub(res.StartAt) > time.Duration(maxMinutes)*time.Minute {
		return fmt.Errorf("%w: at most %d minutes", ErrTooLong, maxMinutes)
	}

	return nil
}
