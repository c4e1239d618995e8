package seatblocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// SeatBlockRepository интерфейс репозитория блокировок
type SeatBlockRepository interface {
	Create(ctx context.Context, block *domain.SeatBlock) (*domain.SeatBlock, error)
	ListByVenue(ctx context.Context, venueID int64, from, to *time.Time) ([]*domain.SeatBlock, error)
	Delete(ctx context.Context, venueID, id int64) error
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	GetTables(ctx context.Context, venueID int64) ([]domain.Table, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
