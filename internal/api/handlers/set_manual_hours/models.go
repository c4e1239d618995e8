package set_manual_hours

import (
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// DayHours часы одного дня в запросе
type DayHours struct {
	DayOfWeek int     `json:"dayOfWeek"`
	IsClosed  bool    `json:"isClosed"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// SetManualHoursRequest HTTP request model
type SetManualHoursRequest struct {
	WeeklyHours []DayHours `json:"weeklyHours"`
}

// ToDomainRows конвертирует запрос в строки расписания
// Формат времени проверяет сервис
func (r *SetManualHoursRequest) ToDomainRows() []domain.WeeklyHoursRow {
	rows := make([]domain.WeeklyHoursRow, 0, len(r.WeeklyHours))
	for _, d := range r.WeeklyHours {
		row := domain.WeeklyHoursRow{
			DayOfWeek: d.DayOfWeek,
			IsClosed:  d.IsClosed,
			Source:    domain.HoursRowManual,
		}
		if d.OpenTime != nil {
			open := types.TimeString(*d.OpenTime)
			row.OpenTime = &open
		}
		if d.CloseTime != nil {
			closeAt := types.TimeString(*d.CloseTime)
			row.CloseTime = &closeAt
		}
		rows = append(rows, row)
	}
	return rows
}
