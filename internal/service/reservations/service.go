package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/queue"
	reservationRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/reservation"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	venueRepo       VenueRepository
	publisher       EventPublisher
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	venueRepo VenueRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		venueRepo:       venueRepo,
		publisher:       publisher,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может его владелец или менеджер площадки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.getReservation(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает бронирования пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetVenueReservations получает бронирования площадки с фильтрацией по периоду и статусу
// Доступно только менеджерам площадки
func (s *Service) GetVenueReservations(ctx context.Context, req *models.GetVenueReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("GetVenueReservations: fetching reservations for venue=%d, user=%d", req.VenueID, req.UserID)
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		return nil, fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueReservations: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueReservations: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueReservations: fetched %d reservations for venue=%d", len(reservations), req.VenueID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Отменить может владелец или менеджер площадки; строка не удаляется, меняется только статус
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	if req.CancellationReason != nil && utf8.RuneCountInString(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	reservation, err := s.getReservation(ctx, reservationID, "Cancel")
	if err != nil {
		return err
	}

	if !reservation.IsActive() {
		s.logger.Warn("Cancel: reservation id=%d is already cancelled", reservationID)
		return ErrCannotCancel
	}

	if err := s.checkUserAccess(ctx, reservation, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
		return err
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			// Отменено параллельным запросом
			s.logger.Warn("Cancel: reservation id=%d no longer active", reservationID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	now := time.Now()
	reservation.Status = domain.ReservationCancelled
	reservation.CancellationReason = req.CancellationReason
	reservation.CancelledAt = &now

	event := queue.NewReservationEvent(queue.EventReservationCancelled, reservation, now)
	if err := s.publisher.PublishReservationEvent(ctx, event); err != nil {
		s.logger.Warn("Cancel: failed to publish event for reservation id=%d: %v", reservationID, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// Вспомогательные методы

func (s *Service) getReservation(ctx context.Context, id int64, op string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// checkUserAccess владелец бронирования или менеджер площадки
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	if reservation.UserID == userID {
		return nil
	}

	if err := s.checkManagerAccess(ctx, reservation.VenueID, userID); err != nil {
		if errors.Is(err, ErrInternal) {
			return err
		}
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером площадки
func (s *Service) checkManagerAccess(ctx context.Context, venueID int64, userID int64) error {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("checkManagerAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of venue=%d", userID, venueID)
		return ErrAccessDenied
	}

	return nil
}
