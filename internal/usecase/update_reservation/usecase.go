package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/queue"
	reservationRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/reservation"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/conflict"
)

// UseCase use case для изменения бронирования сотрудником площадки
type UseCase struct {
	venueRepo       VenueRepository
	reservationRepo ReservationRepository
	validator       ConflictValidator
	publisher       EventPublisher
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
	maxMinutes      int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	venueRepo VenueRepository,
	reservationRepo ReservationRepository,
	validator ConflictValidator,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	maxMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:       venueRepo,
		reservationRepo: reservationRepo,
		validator:       validator,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		maxMinutes:      maxMinutes,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case изменения бронирования
// Само бронирование не считается конфликтом для своего нового времени.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: reservation=%d, user=%d", req.ReservationID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var result *domain.Reservation

	// 2. Чтение, проверка и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование
		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}

		// 2.2. Проверяем права: менять бронирование может только менеджер площадки
		venue, err := uc.venueRepo.GetByID(txCtx, current.VenueID)
		if err != nil {
			if errors.Is(err, venueRepo.ErrVenueNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get venue: %w", ErrInternal, err)
		}
		if !venue.IsManager(req.UserID) {
			return ErrAccessDenied
		}

		if !current.IsActive() {
			return ErrNotActive
		}

		// 2.3. Применяем изменения и проверяем результат
		updated, startChanged := applyChanges(current, req)
		if err := validateResult(updated, startChanged, now, uc.maxMinutes); err != nil {
			return err
		}

		// 2.4. Проверяем конфликты без учета самого бронирования
		decision, err := uc.validator.Check(txCtx, conflict.Request{
			VenueID:              updated.VenueID,
			SeatID:               updated.SeatID,
			TableID:              updated.TableID,
			StartAt:              updated.StartAt,
			EndAt:                updated.EndAt,
			SeatCount:            updated.SeatCount,
			ExcludeReservationID: &updated.ID,
		})
		if err != nil {
			if errors.Is(err, conflict.ErrInvalidInput) {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return fmt.Errorf("%w: conflict check: %w", ErrInternal, err)
		}

		if !decision.Accepted {
			uc.metrics.IncReservationRejected(string(decision.Reason))
			uc.logger.Warn("UpdateReservation: rejected for reservation=%d: %s (booked %d of %d)",
				updated.ID, decision.Reason, decision.Booked, decision.Capacity)
			return rejectionError(decision.Reason)
		}

		// 2.5. Сохраняем
		saved, err := uc.reservationRepo.Update(txCtx, updated)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		result = saved
		return nil
	})

	if err != nil {
		if reservationRepo.IsOverlapError(err) {
			uc.metrics.IncOverlapRaceLost()
			uc.metrics.IncReservationRejected(string(conflict.ReasonSeatsUnavailable))
			uc.logger.Warn("UpdateReservation: lost race for reservation=%d: %v", req.ReservationID, err)
			return nil, ErrSeatsNotAvailable
		}
		if isClientError(err) {
			uc.logger.Warn("UpdateReservation: reservation=%d: %v", req.ReservationID, err)
			return nil, err
		}
		uc.logger.Error("UpdateReservation: failed to update reservation=%d: %v", req.ReservationID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.IncReservationUpdated()
	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d, start=%s, end=%s",
		result.ID, result.StartAt.Format(time.RFC3339), result.EndAt.Format(time.RFC3339))

	// 3. Событие публикуется после фиксации и не влияет на результат
	event := queue.NewReservationEvent(queue.EventReservationUpdated, result, now)
	if err := uc.publisher.PublishReservationEvent(ctx, event); err != nil {
		uc.logger.Warn("UpdateReservation: failed to publish event for reservation id=%d: %v", result.ID, err)
	}

	return toResponse(result), nil
}

// applyChanges возвращает копию бронирования с примененными изменениями
func applyChanges(current *domain.Reservation, req *Request) (*domain.Reservation, bool) {
	updated := *current
	startChanged := false

	if req.StartAt != nil && !req.StartAt.Equal(current.StartAt) {
		updated.StartAt = req.StartAt.UTC()
		startChanged = true
	}
	if req.EndAt != nil {
		updated.EndAt = req.EndAt.UTC()
	}
	if req.SeatID != nil {
		updated.SeatID = req.SeatID
		updated.TableID = nil
	}
	if req.TableID != nil {
		updated.TableID = req.TableID
		updated.SeatID = nil
	}
	if req.ClearResource {
		updated.SeatID = nil
		updated.TableID = nil
	}
	if req.SeatCount != nil {
		updated.SeatCount = *req.SeatCount
	}
	if req.Notes != nil {
		updated.Notes = req.Notes
	}

	return &updated, startChanged
}

func isClientError(err error) bool {
	for _, target := range []error{
		ErrReservationNotFound, ErrAccessDenied, ErrNotActive, ErrSeatsNotAvailable,
		ErrCapacityExceeded, ErrStartInPast, ErrTooLong, ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func rejectionError(reason conflict.Reason) error {
	if reason == conflict.ReasonCapacityExceeded {
		return ErrCapacityExceeded
	}
	return ErrSeatsNotAvailable
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:        r.ID,
		VenueID:   r.VenueID,
		UserID:    r.UserID,
		SeatID:    r.SeatID,
		TableID:   r.TableID,
		StartAt:   r.StartAt,
		EndAt:     r.EndAt,
		SeatCount: r.SeatCount,
		Status:    string(r.Status),
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
