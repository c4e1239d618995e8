package hours

import (
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// PlanGoogleSync определяет, какие дни из свежих данных Google нужно записать
//
// В режиме manual день с уже существующей ручной строкой пропускается:
// ручные правки не перезаписываются обновлением из Google.
// В режиме google (или не задан) записываются все дни.
//
// Все возвращаемые строки помечены источником google
func PlanGoogleSync(existing, fresh []domain.WeeklyHoursRow, source domain.HoursSource) (upsert []domain.WeeklyHoursRow, skipped []int) {
	manualDays := make(map[int]struct{}, domain.DaysPerWeek)
	if source.IsManual() {
		for _, row := range existing {
			if row.Source.IsManual() {
				manualDays[row.DayOfWeek] = struct{}{}
			}
		}
	}

	seen := make(map[int]struct{}, domain.DaysPerWeek)
	upsert = make([]domain.WeeklyHoursRow, 0, len(fresh))

	for _, row := range fresh {
		if _, dup := seen[row.DayOfWeek]; dup {
			continue
		}
		seen[row.DayOfWeek] = struct{}{}

		if _, sticky := manualDays[row.DayOfWeek]; sticky {
			skipped = append(skipped, row.DayOfWeek)
			continue
		}

		row.Source = domain.HoursRowGoogle
		upsert = append(upsert, row)
	}

	return upsert, skipped
}
