package hours

import (
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// validateManualRows проверяет расписание, введенное менеджером
func validateManualRows(rows []domain.WeeklyHoursRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}
	if len(rows) > domain.DaysPerWeek {
		return fmt.Errorf("%w: at most %d days allowed", ErrInvalidInput, domain.DaysPerWeek)
	}

	seen := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		if row.DayOfWeek < 0 || row.DayOfWeek >= domain.DaysPerWeek {
			return fmt.Errorf("%w: dayOfWeek must be in 0..6, got %d", ErrInvalidInput, row.DayOfWeek)
		}
		if _, dup := seen[row.DayOfWeek]; dup {
			return fmt.Errorf("%w: duplicate dayOfWeek %d", ErrInvalidInput, row.DayOfWeek)
		}
		seen[row.DayOfWeek] = struct{}{}

		if row.IsClosed {
			continue
		}

		if row.OpenTime == nil || row.CloseTime == nil {
			return fmt.Errorf("%w: day %d: openTime and closeTime are required", ErrInvalidInput, row.DayOfWeek)
		}
		if err := row.OpenTime.Validate(); err != nil {
			return fmt.Errorf("%w: day %d: openTime: %v", ErrInvalidInput, row.DayOfWeek, err)
		}
		if err := row.CloseTime.Validate(); err != nil {
			return fmt.Errorf("%w: day %d: closeTime: %v", ErrInvalidInput, row.DayOfWeek, err)
		}
		if !row.OpenTime.IsBefore(*row.CloseTime) {
			return fmt.Errorf("%w: day %d: openTime must be before closeTime", ErrInvalidInput, row.DayOfWeek)
		}
	}

	return nil
}
