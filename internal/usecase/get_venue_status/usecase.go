package get_venue_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/availability"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/openstatus"
	"github.com/m04kA/SMC-VenueBookingService/pkg/tzconv"
)

// lookahead окно чтения бронирований: горизонт поиска плюс длина окна
const lookahead = domain.AvailabilityHorizonHours*time.Hour + domain.AvailabilityWindowMinutes*time.Minute

// UseCase use case для получения состояния площадки
type UseCase struct {
	venueRepo       VenueRepository
	reservationRepo ReservationRepository
	hoursService    HoursService
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	venueRepo VenueRepository,
	reservationRepo ReservationRepository,
	hoursService HoursService,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:       venueRepo,
		reservationRepo: reservationRepo,
		hoursService:    hoursService,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения состояния площадки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	if req.At != nil {
		now = *req.At
	}

	// 1. Получаем площадку
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetVenueStatus: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetVenueStatus: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 2. Разрешенное расписание
	canonical, err := uc.hoursService.GetCanonicalHoursForVenue(ctx, venue)
	if err != nil {
		uc.logger.Error("GetVenueStatus: failed to get hours for venue id=%d: %v", venue.ID, err)
		return nil, fmt.Errorf("%w: failed to get hours: %v", ErrInternal, err)
	}

	// 3. Состояние открытия; без строк расписания данных о часах нет
	status := openstatus.GetOpenStatus(*canonical, now)
	var statusInput *domain.OpenStatus
	if len(canonical.WeeklyHours) > 0 {
		statusInput = &status
	}

	// 4. Бронирования на ближайшие часы
	from, to := now.UTC(), now.UTC().Add(lookahead)
	reservations, err := uc.reservationRepo.GetByVenueWithFilter(ctx, domain.VenueReservationsFilter{
		VenueID: venue.ID,
		From:    &from,
		To:      &to,
	})
	if err != nil {
		uc.logger.Error("GetVenueStatus: failed to get reservations for venue id=%d: %v", venue.ID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 5. Вместимость
	tables, err := uc.venueRepo.GetTables(ctx, venue.ID)
	if err != nil {
		uc.logger.Error("GetVenueStatus: failed to get tables for venue id=%d: %v", venue.ID, err)
		return nil, fmt.Errorf("%w: failed to get tables: %v", ErrInternal, err)
	}
	capacity := domain.Capacity(tables)

	// 6. Подпись доступности
	loc, _ := tzconv.LoadOrUTC(canonical.Timezone)
	result := availability.Calculate(availability.Input{
		Capacity:     capacity,
		Reservations: reservations,
		OpenStatus:   statusInput,
		Now:          now,
		Location:     loc,
	})

	return &Response{
		VenueID:         venue.ID,
		Timezone:        canonical.Timezone,
		Capacity:        capacity,
		WeeklyHours:     canonical.WeeklyHours,
		OpenStatus:      status,
		Availability:    result.Label,
		State:           result.State,
		NextAvailableAt: result.NextAvailableAt,
		CalculatedAt:    now,
	}, nil
}
