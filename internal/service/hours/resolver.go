package hours

import (
	"sort"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// GetEffectiveVenueHours выбирает строки расписания по режиму приоритета площадки
//
// manual: только ручные строки
// google или не задан: только строки из Google, legacy строки считаются google
//
// Смешения источников по дням нет: результат однороден по источнику
// Результат упорядочен по дню недели, на день не больше одной строки (первая встреченная)
// Явная google строка вытесняет legacy строку того же дня
func GetEffectiveVenueHours(rows []domain.WeeklyHoursRow, source domain.HoursSource) []domain.WeeklyHoursRow {
	result := make([]domain.WeeklyHoursRow, 0, len(rows))
	seen := make(map[int]int, domain.DaysPerWeek)

	for _, row := range rows {
		if !matchesSource(row, source) {
			continue
		}
		if row.DayOfWeek < 0 || row.DayOfWeek >= domain.DaysPerWeek {
			continue
		}
		if idx, dup := seen[row.DayOfWeek]; dup {
			if result[idx].Source == domain.HoursRowLegacy && row.Source == domain.HoursRowGoogle {
				result[idx] = row
			}
			continue
		}
		seen[row.DayOfWeek] = len(result)
		result = append(result, row)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DayOfWeek < result[j].DayOfWeek
	})

	return result
}

// Canonicalize строит разрешенное расписание площадки
func Canonicalize(timezone string, rows []domain.WeeklyHoursRow, source domain.HoursSource) domain.CanonicalVenueHours {
	return domain.CanonicalVenueHours{
		Timezone:    timezone,
		WeeklyHours: GetEffectiveVenueHours(rows, source),
	}
}

func matchesSource(row domain.WeeklyHoursRow, source domain.HoursSource) bool {
	if source.IsManual() {
		return row.Source.IsManual()
	}
	return row.Source.IsGoogle()
}
