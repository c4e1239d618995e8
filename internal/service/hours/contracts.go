package hours

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	UpdateHoursSource(ctx context.Context, id int64, source domain.HoursSource) error
}

// HoursRepository интерфейс репозитория строк расписания
type HoursRepository interface {
	GetByVenue(ctx context.Context, venueID int64) ([]domain.WeeklyHoursRow, error)
	Upsert(ctx context.Context, venueID int64, rows []domain.WeeklyHoursRow) error
	DeleteLegacyDays(ctx context.Context, venueID int64, days []int) error
	DeleteManualExcept(ctx context.Context, venueID int64, keepDays []int) error
}

// GooglePlacesClient интерфейс клиента Google Places
type GooglePlacesClient interface {
	GetWeeklyHours(ctx context.Context, placeID string) ([]domain.WeeklyHoursRow, error)
}

// HoursCache кэш разрешенных расписаний
type HoursCache interface {
	GetCanonicalHours(ctx context.Context, venueID int64) (*domain.CanonicalVenueHours, bool, error)
	SetCanonicalHours(ctx context.Context, venueID int64, hours domain.CanonicalVenueHours) error
	InvalidateVenue(ctx context.Context, venueID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
