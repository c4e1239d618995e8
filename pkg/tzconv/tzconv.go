// Package tzconv переводит моменты времени в локальные часы площадки и обратно.
// Часовой пояс сервера в расчетах не используется.
package tzconv

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrUnknownTimezone возвращается для пустого или неизвестного IANA идентификатора
var ErrUnknownTimezone = errors.New("tzconv: unknown timezone")

var (
	cacheMu sync.RWMutex
	cache   = map[string]*time.Location{}
)

// Load возвращает *time.Location для IANA идентификатора (например, "Europe/Moscow")
// Загруженные зоны кэшируются
func Load(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownTimezone)
	}

	cacheMu.RLock()
	loc, ok := cache[name]
	cacheMu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, name, err)
	}

	cacheMu.Lock()
	cache[name] = loc
	cacheMu.Unlock()

	return loc, nil
}

// LoadOrUTC возвращает зону или UTC, если зона не загружается
func LoadOrUTC(name string) (*time.Location, error) {
	loc, err := Load(name)
	if err != nil {
		return time.UTC, err
	}
	return loc, nil
}

// WallClock положение момента на локальных часах площадки
type WallClock struct {
	Year    int
	Month   time.Month
	Day     int
	Weekday time.Weekday
	Minutes int // минуты от локальной полуночи
}

// ToWallClock переводит момент в локальные часы зоны loc
func ToWallClock(at time.Time, loc *time.Location) WallClock {
	local := at.In(loc)
	y, m, d := local.Date()
	return WallClock{
		Year:    y,
		Month:   m,
		Day:     d,
		Weekday: local.Weekday(),
		Minutes: local.Hour()*60 + local.Minute(),
	}
}

// InstantAt строит абсолютный момент для локальной даты (со сдвигом на dayOffset дней)
// и количества минут от полуночи в зоне loc
// Нормализация дат и переходы на летнее время выполняются time.Date
func InstantAt(wc WallClock, dayOffset, minutes int, loc *time.Location) time.Time {
	return time.Date(wc.Year, wc.Month, wc.Day+dayOffset, minutes/60, minutes%60, 0, 0, loc)
}

// SameLocalDay проверяет, что два момента приходятся на одну календарную дату в зоне loc
func SameLocalDay(a, b time.Time, loc *time.Location) bool {
	return DayDiff(a, b, loc) == 0
}

// DayDiff возвращает разницу в календарных днях (b - a) в зоне loc
func DayDiff(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// ShortWeekday возвращает трехбуквенное обозначение дня недели без учета локали
func ShortWeekday(d time.Weekday) string {
	return d.String()[:3]
}

// ConvertHour переводит час локального времени площадки в час другой зоны на указанную дату
// Используется отображением часов работы в часовом поясе пользователя
func ConvertHour(date time.Time, hour int, from, to *time.Location) int {
	y, m, d := date.In(from).Date()
	return time.Date(y, m, d, hour, 0, 0, 0, from).In(to).Hour()
}
