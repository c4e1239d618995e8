// Package availability собирает состояние открытия и текущие бронирования в подпись доступности площадки
package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
	"github.com/m04kA/SMC-VenueBookingService/pkg/tzconv"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// State машинное состояние доступности
type State string

const (
	StateSoldOut       State = "SOLD_OUT"
	StateClosed        State = "CLOSED"
	StateOpensLater    State = "OPENS_LATER"
	StateAvailableNow  State = "AVAILABLE_NOW"
	StateNextAvailable State = "NEXT_AVAILABLE"
)

const (
	LabelSoldOut         = "Sold out for now"
	LabelCurrentlyClosed = "Currently Closed"
	LabelAvailableNow    = "Available now"
)

const (
	step    = domain.AvailabilityStepMinutes * time.Minute
	window  = domain.AvailabilityWindowMinutes * time.Minute
	horizon = domain.AvailabilityHorizonHours * time.Hour
)

// Input входные данные расчета
// Location часовой пояс площадки; если nil, используется зона Now
type Input struct {
	Capacity     int
	Reservations []*domain.Reservation
	OpenStatus   *domain.OpenStatus
	Now          time.Time
	Location     *time.Location
}

// Result подпись и состояние доступности
type Result struct {
	Label           string
	State           State
	NextAvailableAt *time.Time
}

// Calculate вычисляет подпись доступности
func Calculate(in Input) Result {
	// 1. Нет мест: приоритетнее всего остального
	if in.Capacity <= 0 {
		return Result{Label: LabelSoldOut, State: StateSoldOut}
	}

	// 2. Нет данных о часах работы
	if in.OpenStatus == nil {
		return Result{Label: LabelCurrentlyClosed, State: StateClosed}
	}

	loc := in.Location
	if loc == nil {
		loc = in.Now.Location()
	}

	// 3. Закрыто: подпись по ближайшему открытию
	if !in.OpenStatus.IsOpen {
		return closedResult(in.OpenStatus.NextOpenAt, in.Now, loc)
	}

	// 4. Открыто: ищем первое часовое окно со свободными местами
	start := RoundUpTo15(in.Now, loc)
	for offset := time.Duration(0); offset < horizon; offset += step {
		windowStart := start.Add(offset)
		windowEnd := windowStart.Add(window)

		if bookedSeats(in.Reservations, windowStart, windowEnd) >= in.Capacity {
			continue
		}

		if offset == 0 {
			return Result{Label: LabelAvailableNow, State: StateAvailableNow, NextAvailableAt: ptr.Ptr(windowStart)}
		}
		return Result{
			Label:           "Next availability @ " + formatClock(windowStart, loc),
			State:           StateNextAvailable,
			NextAvailableAt: ptr.Ptr(windowStart),
		}
	}

	return Result{Label: LabelSoldOut, State: StateSoldOut}
}

func closedResult(nextOpenAt *time.Time, now time.Time, loc *time.Location) Result {
	if nextOpenAt == nil {
		return Result{Label: LabelCurrentlyClosed, State: StateClosed}
	}

	at := formatClock(*nextOpenAt, loc)
	var label string
	switch tzconv.DayDiff(now, *nextOpenAt, loc) {
	case 0:
		label = "Opens at " + at
	case 1:
		label = "Opens tomorrow at " + at
	default:
		label = fmt.Sprintf("Opens %s at %s", nextOpenAt.In(loc).Weekday(), at)
	}

	return Result{Label: label, State: StateOpensLater, NextAvailableAt: ptr.Ptr(*nextOpenAt)}
}

// bookedSeats сумма мест активных бронирований, пересекающихся с [start, end)
func bookedSeats(reservations []*domain.Reservation, start, end time.Time) int {
	total := 0
	for _, r := range reservations {
		if r == nil || !r.IsActive() || !r.Overlaps(start, end) {
			continue
		}
		total += r.SeatCount
	}
	return total
}

// RoundUpTo15 округляет момент вверх до ближайшей границы 15 минут по локальным часам loc
// Момент ровно на границе (без секунд и долей) не меняется
func RoundUpTo15(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	rem := time.Duration(local.Minute()%domain.AvailabilityStepMinutes)*time.Minute +
		time.Duration(local.Second())*time.Second +
		time.Duration(local.Nanosecond())
	if rem == 0 {
		return t
	}
	return t.Add(step - rem)
}

func formatClock(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return types.FormatClock12h(local.Hour(), local.Minute())
}
