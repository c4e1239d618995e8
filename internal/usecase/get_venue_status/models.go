package get_venue_status

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/availability"
)

// Request модель запроса состояния площадки
type Request struct {
	VenueID int64
	At      *time.Time // Момент расчета; по умолчанию текущее время
}

// Response состояние площадки: часы, открытие и доступность
type Response struct {
	VenueID         int64
	Timezone        string
	Capacity        int
	WeeklyHours     []domain.WeeklyHoursRow
	OpenStatus      domain.OpenStatus
	Availability    string
	State           availability.State
	NextAvailableAt *time.Time
	CalculatedAt    time.Time
}
