package get_venue_status

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	GetTables(ctx context.Context, venueID int64) ([]domain.Table, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueReservationsFilter) ([]*domain.Reservation, error)
}

// HoursService источник разрешенного расписания площадки
type HoursService interface {
	GetCanonicalHoursForVenue(ctx context.Context, venue *domain.Venue) (*domain.CanonicalVenueHours, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
