// Package openstatus вычисляет, открыта ли площадка в заданный момент, и ближайшее открытие.
// Функции пакета чистые: не читают часы, не зависят от локали и часового пояса сервера.
package openstatus

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
	"github.com/m04kA/SMC-VenueBookingService/pkg/tzconv"
)

const (
	// ClosedText подпись закрытого дня
	ClosedText = "Closed"

	// MsgNoHoursConfigured ни один день в ближайшую неделю не открывается
	MsgNoHoursConfigured = "no hours configured"

	lookaheadDays = domain.DaysPerWeek
)

// GetOpenStatus возвращает состояние площадки в момент at по ее разрешенному расписанию
// Для одинаковых входных данных результат всегда одинаков
func GetOpenStatus(canonical domain.CanonicalVenueHours, at time.Time) domain.OpenStatus {
	var diagnostics []string

	loc, err := tzconv.LoadOrUTC(canonical.Timezone)
	if err != nil {
		diagnostics = append(diagnostics, fmt.Sprintf("timezone %q is not valid, evaluated in UTC", canonical.Timezone))
	}

	now := tzconv.ToWallClock(at, loc)

	// Отсутствие строки на день равносильно закрытому дню
	today, _ := canonical.Day(int(now.Weekday))
	openMin, closeMin, openToday := today.OpenWindow()

	result := domain.OpenStatus{
		TodayLabel:     tzconv.ShortWeekday(now.Weekday),
		TodayHoursText: ClosedText,
	}
	if openToday {
		result.TodayHoursText = FormatHours(today)
	}

	switch {
	// Границы включаются: ровно в момент открытия и ровно в момент закрытия площадка открыта
	case openToday && openMin <= now.Minutes && now.Minutes <= closeMin:
		result.IsOpen = true
		result.Status = domain.OpenNow
	case openToday && now.Minutes < openMin:
		result.Status = domain.OpensLater
		result.NextOpenAt = ptr.Ptr(tzconv.InstantAt(now, 0, openMin, loc))
	case openToday:
		result.Status = domain.ClosedNow
		result.NextOpenAt = nextOpening(canonical, now, loc)
	default:
		result.Status = domain.ClosedToday
		result.NextOpenAt = nextOpening(canonical, now, loc)
	}

	if !result.IsOpen && result.NextOpenAt == nil {
		diagnostics = append(diagnostics, MsgNoHoursConfigured)
	}
	if len(diagnostics) > 0 {
		result.DiagnosticMessage = ptr.Ptr(strings.Join(diagnostics, "; "))
	}

	return result
}

// nextOpening ищет первый открытый день после сегодняшнего в пределах недели
// Сдвиг 7 дней означает тот же день недели на следующей неделе
func nextOpening(canonical domain.CanonicalVenueHours, now tzconv.WallClock, loc *time.Location) *time.Time {
	for offset := 1; offset <= lookaheadDays; offset++ {
		day := (int(now.Weekday) + offset) % domain.DaysPerWeek
		row, ok := canonical.Day(day)
		if !ok {
			continue
		}
		openMin, _, open := row.OpenWindow()
		if !open {
			continue
		}
		return ptr.Ptr(tzconv.InstantAt(now, offset, openMin, loc))
	}
	return nil
}

// FormatHours форматирует часы дня как "9:00 AM – 5:00 PM" или "Closed"
func FormatHours(row domain.WeeklyHoursRow) string {
	if _, _, ok := row.OpenWindow(); !ok {
		return ClosedText
	}
	return fmt.Sprintf("%s – %s", row.OpenTime.Format12h(), row.CloseTime.Format12h())
}

