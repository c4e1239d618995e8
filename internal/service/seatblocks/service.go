// Package seatblocks управляет административными блокировками мест
package seatblocks

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	seatBlockRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/seatblock"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
)

// Service сервис блокировок мест
type Service struct {
	blockRepo SeatBlockRepository
	venueRepo VenueRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(blockRepo SeatBlockRepository, venueRepo VenueRepository, logger Logger) *Service {
	return &Service{
		blockRepo: blockRepo,
		venueRepo: venueRepo,
		logger:    logger,
	}
}

// Create создает блокировку
// Уже существующие бронирования на это время не отменяются
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*domain.SeatBlock, error) {
	s.logger.Info("CreateSeatBlock: venue=%d, seat=%v, user=%d", req.VenueID, req.SeatID, req.UserID)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("CreateSeatBlock: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// Место должно принадлежать площадке
	if req.SeatID != nil {
		tables, err := s.venueRepo.GetTables(ctx, req.VenueID)
		if err != nil {
			s.logger.Error("CreateSeatBlock: failed to get tables for venue=%d: %v", req.VenueID, err)
			return nil, fmt.Errorf("%w: failed to get tables: %v", ErrInternal, err)
		}
		if _, _, ok := domain.FindSeat(tables, *req.SeatID); !ok {
			return nil, fmt.Errorf("%w: seat %d does not belong to venue %d", ErrInvalidInput, *req.SeatID, req.VenueID)
		}
	}

	block, err := s.blockRepo.Create(ctx, &domain.SeatBlock{
		VenueID:   req.VenueID,
		SeatID:    req.SeatID,
		StartAt:   req.StartAt.UTC(),
		EndAt:     req.EndAt.UTC(),
		Reason:    req.Reason,
		CreatedBy: req.UserID,
	})
	if err != nil {
		s.logger.Error("CreateSeatBlock: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSeatBlock: created block id=%d for venue=%d", block.ID, req.VenueID)
	return block, nil
}

// Delete снимает блокировку
func (s *Service) Delete(ctx context.Context, venueID, blockID, userID int64) error {
	s.logger.Info("DeleteSeatBlock: venue=%d, block=%d, user=%d", venueID, blockID, userID)

	if err := s.checkManagerAccess(ctx, venueID, userID); err != nil {
		return err
	}

	if err := s.blockRepo.Delete(ctx, venueID, blockID); err != nil {
		if errors.Is(err, seatBlockRepo.ErrSeatBlockNotFound) {
			return ErrSeatBlockNotFound
		}
		s.logger.Error("DeleteSeatBlock: repository error for block=%d: %v", blockID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ListForVenue возвращает блокировки площадки, пересекающиеся с периодом
func (s *Service) ListForVenue(ctx context.Context, req *ListRequest) ([]*domain.SeatBlock, error) {
	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		return nil, fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	blocks, err := s.blockRepo.ListByVenue(ctx, req.VenueID, req.From, req.To)
	if err != nil {
		s.logger.Error("ListSeatBlocks: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: ListForVenue - repository error: %v", ErrInternal, err)
	}

	return blocks, nil
}

func validateCreate(req *CreateRequest) error {
	if req.VenueID <= 0 || req.UserID <= 0 {
		return fmt.Errorf("%w: venueID and userID must be positive", ErrInvalidInput)
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}
	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Reason) > domain.MaxBlockReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}
	return nil
}

func (s *Service) checkManagerAccess(ctx context.Context, venueID, userID int64) error {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return ErrVenueNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of venue=%d", userID, venueID)
		return ErrAccessDenied
	}

	return nil
}
