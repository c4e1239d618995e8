package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// ErrInvalidHoursSource возвращается для неизвестного значения источника часов
var ErrInvalidHoursSource = errors.New("domain: invalid hours source")

// HoursRowSource источник строки расписания
// HoursRowLegacy строка без поля source (создана до его появления), по построению пришла из Google
type HoursRowSource string

const (
	HoursRowManual HoursRowSource = "manual"
	HoursRowGoogle HoursRowSource = "google"
	HoursRowLegacy HoursRowSource = ""
)

// ParseHoursRowSource разбирает значение из БД или JSON
func ParseHoursRowSource(s string) (HoursRowSource, error) {
	switch HoursRowSource(s) {
	case HoursRowManual, HoursRowGoogle, HoursRowLegacy:
		return HoursRowSource(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHoursSource, s)
	}
}

// IsManual строка введена менеджером
func (s HoursRowSource) IsManual() bool {
	return s == HoursRowManual
}

// IsGoogle строка получена из Google (включая legacy)
func (s HoursRowSource) IsGoogle() bool {
	return s == HoursRowGoogle || s == HoursRowLegacy
}

// Value реализует driver.Valuer, legacy хранится как NULL
func (s HoursRowSource) Value() (driver.Value, error) {
	if s == HoursRowLegacy {
		return nil, nil
	}
	return string(s), nil
}

// Scan реализует sql.Scanner, NULL читается как legacy
func (s *HoursRowSource) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = HoursRowLegacy
		return nil
	case string:
		parsed, err := ParseHoursRowSource(v)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	case []byte:
		parsed, err := ParseHoursRowSource(string(v))
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidHoursSource, src)
	}
}

// UnmarshalJSON принимает null как legacy
func (s *HoursRowSource) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = HoursRowLegacy
		return nil
	}
	parsed, err := ParseHoursRowSource(*raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// HoursSource режим приоритета расписания площадки
// Пустое значение (не задан) работает как google
type HoursSource string

const (
	HoursSourceManual HoursSource = "manual"
	HoursSourceGoogle HoursSource = "google"
	HoursSourceUnset  HoursSource = ""
)

// ParseHoursSource разбирает режим приоритета
func ParseHoursSource(s string) (HoursSource, error) {
	switch HoursSource(s) {
	case HoursSourceManual, HoursSourceGoogle, HoursSourceUnset:
		return HoursSource(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHoursSource, s)
	}
}

// IsManual приоритет у ручного расписания
func (s HoursSource) IsManual() bool {
	return s == HoursSourceManual
}

// Value реализует driver.Valuer, unset хранится как NULL
func (s HoursSource) Value() (driver.Value, error) {
	if s == HoursSourceUnset {
		return nil, nil
	}
	return string(s), nil
}

// Scan реализует sql.Scanner
func (s *HoursSource) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = HoursSourceUnset
		return nil
	case string:
		parsed, err := ParseHoursSource(v)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	case []byte:
		parsed, err := ParseHoursSource(string(v))
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidHoursSource, src)
	}
}

// WeeklyHoursRow часы работы площадки в один день недели (0 = воскресенье .. 6 = суббота)
// OpenTime/CloseTime заданы, если день не закрыт
// Переход через полночь не поддерживается, "23:59" означает «до конца дня»
type WeeklyHoursRow struct {
	DayOfWeek int               `json:"dayOfWeek"`
	IsClosed  bool              `json:"isClosed"`
	OpenTime  *types.TimeString `json:"openTime,omitempty"`
	CloseTime *types.TimeString `json:"closeTime,omitempty"`
	Source    HoursRowSource    `json:"source"`
}

// OpenWindow возвращает минуты открытия и закрытия
// ok = false, если день закрыт или время не задано/некорректно
func (r WeeklyHoursRow) OpenWindow() (openMin, closeMin int, ok bool) {
	if r.IsClosed || r.OpenTime == nil || r.CloseTime == nil {
		return 0, 0, false
	}
	openMin, closeMin = r.OpenTime.Minutes(), r.CloseTime.Minutes()
	if openMin < 0 || closeMin < 0 || openMin >= closeMin {
		return 0, 0, false
	}
	return openMin, closeMin, true
}

// CanonicalVenueHours разрешенное расписание площадки: не больше одной строки на день, по порядку дней
// Не хранится, вычисляется при чтении
type CanonicalVenueHours struct {
	Timezone    string           `json:"timezone"`
	WeeklyHours []WeeklyHoursRow `json:"weeklyHours"`
}

// Day возвращает строку на день недели
func (c CanonicalVenueHours) Day(dayOfWeek int) (WeeklyHoursRow, bool) {
	for _, row := range c.WeeklyHours {
		if row.DayOfWeek == dayOfWeek {
			return row, true
		}
	}
	return WeeklyHoursRow{}, false
}
