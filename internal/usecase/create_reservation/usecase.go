package create_reservation

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

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования
// Проверка конфликтов и вставка выполняются в одной сериализуемой транзакции.
// Проигранная гонка (ограничение исключения или конфликт сериализации) возвращается как ErrSeatsNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, venue=%d, seat=%v, table=%v, start=%s, end=%s, seats=%d",
		req.UserID, req.VenueID, fmtID(req.SeatID), fmtID(req.TableID),
		req.StartAt.UTC().Format(time.RFC3339), req.EndAt.UTC().Format(time.RFC3339), req.SeatCount)

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now, uc.maxMinutes); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование площадки
	if _, err := uc.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CreateReservation: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateReservation: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	var result *domain.Reservation

	// 3. Проверка и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Проверяем конфликты с бронированиями и блокировками
		decision, err := uc.validator.Check(txCtx, conflict.Request{
			VenueID:   req.VenueID,
			SeatID:    req.SeatID,
			TableID:   req.TableID,
			StartAt:   req.StartAt,
			EndAt:     req.EndAt,
			SeatCount: req.SeatCount,
		})
		if err != nil {
			if errors.Is(err, conflict.ErrInvalidInput) {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return fmt.Errorf("%w: conflict check: %w", ErrInternal, err)
		}

		if !decision.Accepted {
			uc.metrics.IncReservationRejected(string(decision.Reason))
			uc.logger.Warn("CreateReservation: rejected for venue=%d: %s (booked %d of %d)",
				req.VenueID, decision.Reason, decision.Booked, decision.Capacity)
			return rejectionError(decision.Reason)
		}

		// 3.2. Создаем бронирование, окончательное слово за ограничением исключения
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			VenueID:   req.VenueID,
			UserID:    req.UserID,
			SeatID:    req.SeatID,
			TableID:   req.TableID,
			StartAt:   req.StartAt.UTC(),
			EndAt:     req.EndAt.UTC(),
			SeatCount: req.SeatCount,
			Status:    domain.ReservationActive,
			Notes:     req.Notes,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		if reservationRepo.IsOverlapError(err) {
			uc.metrics.IncOverlapRaceLost()
			uc.metrics.IncReservationRejected(string(conflict.ReasonSeatsUnavailable))
			uc.logger.Warn("CreateReservation: lost race for venue=%d: %v", req.VenueID, err)
			return nil, ErrSeatsNotAvailable
		}
		if errors.Is(err, ErrSeatsNotAvailable) || errors.Is(err, ErrCapacityExceeded) || errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.IncReservationCreated()
	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 4. Событие публикуется после фиксации и не влияет на результат
	event := queue.NewReservationEvent(queue.EventReservationCreated, result, now)
	if err := uc.publisher.PublishReservationEvent(ctx, event); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for reservation id=%d: %v", result.ID, err)
	}

	return toResponse(result), nil
}

func rejectionError(reason conflict.Reason) error {
	if reason == conflict.ReasonCapacityExceeded {
		return ErrCapacityExceeded
	}
	return ErrSeatsNotAvailable
}

func fmtID(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
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
