package hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
)

// SyncResult результат синхронизации часов с Google
type SyncResult struct {
	VenueID     int64
	UpdatedDays []int
	SkippedDays []int // дни с ручными строками в режиме manual
}

// Service сервис расписаний площадок
type Service struct {
	venueRepo    VenueRepository
	hoursRepo    HoursRepository
	googleClient GooglePlacesClient
	cache        HoursCache
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	venueRepo VenueRepository,
	hoursRepo HoursRepository,
	googleClient GooglePlacesClient,
	cache HoursCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		venueRepo:    venueRepo,
		hoursRepo:    hoursRepo,
		googleClient: googleClient,
		cache:        cache,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetCanonicalHours возвращает разрешенное расписание площадки
// Сначала читает кэш, при промахе собирает расписание из БД и кладет в кэш
func (s *Service) GetCanonicalHours(ctx context.Context, venueID int64) (*domain.CanonicalVenueHours, error) {
	cached, found, err := s.cache.GetCanonicalHours(ctx, venueID)
	if err != nil {
		s.logger.Warn("GetCanonicalHours: cache read failed for venue=%d: %v", venueID, err)
	} else if found {
		return cached, nil
	}

	venue, err := s.getVenue(ctx, venueID, "GetCanonicalHours")
	if err != nil {
		return nil, err
	}

	return s.buildAndCache(ctx, venue)
}

// GetCanonicalHoursForVenue то же, что GetCanonicalHours, для уже загруженной площадки
func (s *Service) GetCanonicalHoursForVenue(ctx context.Context, venue *domain.Venue) (*domain.CanonicalVenueHours, error) {
	cached, found, err := s.cache.GetCanonicalHours(ctx, venue.ID)
	if err != nil {
		s.logger.Warn("GetCanonicalHours: cache read failed for venue=%d: %v", venue.ID, err)
	} else if found {
		return cached, nil
	}

	return s.buildAndCache(ctx, venue)
}

// SyncVenueHoursFromGoogle обновляет google строки расписания площадки данными из Google Places
// В режиме manual дни с ручными строками не трогаются
func (s *Service) SyncVenueHoursFromGoogle(ctx context.Context, venueID int64) (*SyncResult, error) {
	s.logger.Info("SyncVenueHoursFromGoogle: venue=%d", venueID)

	venue, err := s.getVenue(ctx, venueID, "SyncVenueHoursFromGoogle")
	if err != nil {
		return nil, err
	}

	if venue.GooglePlaceID == nil || *venue.GooglePlaceID == "" {
		s.logger.Warn("SyncVenueHoursFromGoogle: venue=%d has no google place id", venueID)
		return nil, ErrNoGooglePlace
	}

	// Внешний запрос выполняем до открытия транзакции
	fresh, err := s.googleClient.GetWeeklyHours(ctx, *venue.GooglePlaceID)
	if err != nil {
		s.logger.Error("SyncVenueHoursFromGoogle: google places request failed for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: %v", ErrGoogleUnavailable, err)
	}

	result := &SyncResult{VenueID: venueID}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.hoursRepo.GetByVenue(txCtx, venueID)
		if err != nil {
			return fmt.Errorf("%w: failed to get hours: %v", ErrInternal, err)
		}

		upsert, skipped := PlanGoogleSync(existing, fresh, venue.HoursSource)
		result.SkippedDays = skipped
		for _, row := range upsert {
			result.UpdatedDays = append(result.UpdatedDays, row.DayOfWeek)
		}

		if len(upsert) == 0 {
			return nil
		}
		if err := s.hoursRepo.DeleteLegacyDays(txCtx, venueID, result.UpdatedDays); err != nil {
			return fmt.Errorf("%w: failed to delete legacy hours: %v", ErrInternal, err)
		}
		if err := s.hoursRepo.Upsert(txCtx, venueID, upsert); err != nil {
			return fmt.Errorf("%w: failed to upsert hours: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SyncVenueHoursFromGoogle: venue=%d: %v", venueID, err)
		return nil, err
	}

	s.invalidate(ctx, venueID)

	s.logger.Info("SyncVenueHoursFromGoogle: venue=%d updated days=%v, skipped manual days=%v",
		venueID, result.UpdatedDays, result.SkippedDays)
	return result, nil
}

// SetManualHours сохраняет ручное расписание и переключает площадку в режим manual
// Переданный набор заменяет ручное расписание целиком: ручные строки пропущенных дней удаляются
// Доступно только менеджерам площадки
func (s *Service) SetManualHours(ctx context.Context, venueID, userID int64, rows []domain.WeeklyHoursRow) (*domain.CanonicalVenueHours, error) {
	s.logger.Info("SetManualHours: venue=%d, user=%d, days=%d", venueID, userID, len(rows))

	venue, err := s.getVenue(ctx, venueID, "SetManualHours")
	if err != nil {
		return nil, err
	}

	if !venue.IsManager(userID) {
		s.logger.Warn("SetManualHours: access denied for user=%d to venue=%d", userID, venueID)
		return nil, ErrAccessDenied
	}

	if err := validateManualRows(rows); err != nil {
		s.logger.Warn("SetManualHours: validation failed: %v", err)
		return nil, err
	}

	manual := make([]domain.WeeklyHoursRow, 0, len(rows))
	keepDays := make([]int, 0, len(rows))
	for _, row := range rows {
		row.Source = domain.HoursRowManual
		if row.IsClosed {
			row.OpenTime, row.CloseTime = nil, nil
		}
		manual = append(manual, row)
		keepDays = append(keepDays, row.DayOfWeek)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.hoursRepo.DeleteManualExcept(txCtx, venueID, keepDays); err != nil {
			return fmt.Errorf("%w: failed to delete omitted manual hours: %v", ErrInternal, err)
		}
		if err := s.hoursRepo.Upsert(txCtx, venueID, manual); err != nil {
			return fmt.Errorf("%w: failed to upsert manual hours: %v", ErrInternal, err)
		}
		if err := s.venueRepo.UpdateHoursSource(txCtx, venueID, domain.HoursSourceManual); err != nil {
			return fmt.Errorf("%w: failed to update hours source: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("SetManualHours: venue=%d: %v", venueID, err)
		return nil, err
	}

	s.invalidate(ctx, venueID)
	venue.HoursSource = domain.HoursSourceManual

	s.logger.Info("SetManualHours: venue=%d switched to manual hours", venueID)
	return s.buildAndCache(ctx, venue)
}

// SetHoursSource переключает режим приоритета расписания
// Доступно только менеджерам площадки
func (s *Service) SetHoursSource(ctx context.Context, venueID, userID int64, source domain.HoursSource) (*domain.CanonicalVenueHours, error) {
	s.logger.Info("SetHoursSource: venue=%d, user=%d, source=%q", venueID, userID, source)

	venue, err := s.getVenue(ctx, venueID, "SetHoursSource")
	if err != nil {
		return nil, err
	}

	if !venue.IsManager(userID) {
		s.logger.Warn("SetHoursSource: access denied for user=%d to venue=%d", userID, venueID)
		return nil, ErrAccessDenied
	}

	if err := s.venueRepo.UpdateHoursSource(ctx, venueID, source); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		s.logger.Error("SetHoursSource: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: SetHoursSource - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, venueID)
	venue.HoursSource = source

	return s.buildAndCache(ctx, venue)
}

func (s *Service) getVenue(ctx context.Context, venueID int64, op string) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("%s: venue id=%d not found", op, venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("%s: repository error for venue id=%d: %v", op, venueID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return venue, nil
}

func (s *Service) buildAndCache(ctx context.Context, venue *domain.Venue) (*domain.CanonicalVenueHours, error) {
	rows, err := s.hoursRepo.GetByVenue(ctx, venue.ID)
	if err != nil {
		s.logger.Error("GetCanonicalHours: repository error for venue=%d: %v", venue.ID, err)
		return nil, fmt.Errorf("%w: failed to get hours: %v", ErrInternal, err)
	}

	canonical := Canonicalize(venue.Timezone, rows, venue.HoursSource)

	if err := s.cache.SetCanonicalHours(ctx, venue.ID, canonical); err != nil {
		s.logger.Warn("GetCanonicalHours: cache write failed for venue=%d: %v", venue.ID, err)
	}

	return &canonical, nil
}

func (s *Service) invalidate(ctx context.Context, venueID int64) {
	if err := s.cache.InvalidateVenue(ctx, venueID); err != nil {
		s.logger.Warn("hours: cache invalidation failed for venue=%d: %v", venueID, err)
	}
}
