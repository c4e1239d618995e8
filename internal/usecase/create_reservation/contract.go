package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/queue"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/conflict"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// ConflictValidator проверка конфликтов бронирования
type ConflictValidator interface {
	Check(ctx context.Context, req conflict.Request) (*conflict.Decision, error)
}

// EventPublisher издатель событий бронирований
type EventPublisher interface {
	PublishReservationEvent(ctx context.Context, event queue.ReservationEvent) error
}

// Metrics счетчики бронирований
type Metrics interface {
	IncReservationCreated()
	IncReservationRejected(reason string)
	IncOverlapRaceLost()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
