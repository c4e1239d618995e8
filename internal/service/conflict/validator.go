// Package conflict проверяет, можно ли принять бронирование места, стола или части вместимости площадки.
//
// Проверка не защищена от гонок: два параллельных запроса могут пройти ее оба.
// Окончательное решение принимает ограничение исключения в БД, валидатор же дает
// быстрый и обычно верный ответ с понятным сообщением.
package conflict

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// ErrInvalidInput некорректный запрос: до БД не доходит
var ErrInvalidInput = errors.New("conflict: invalid input")

// ErrInternal ошибка чтения данных
var ErrInternal = errors.New("conflict: internal error")

// Reason причина отказа
type Reason string

const (
	ReasonCapacityExceeded Reason = "capacity_exceeded"
	ReasonSeatsUnavailable Reason = "seats_unavailable"
)

const (
	MsgSeatsUnavailable = "seats not available for that time"
	MsgCapacityExceeded = "requested seats exceed venue capacity"
)

// Request проверяемое бронирование
// SeatID и TableID взаимоисключающие, если не задано ни одно, проверяется вместимость площадки
type Request struct {
	VenueID              int64
	SeatID               *int64
	TableID              *int64
	StartAt              time.Time
	EndAt                time.Time
	SeatCount            int
	ExcludeReservationID *int64 // при редактировании исключаем само бронирование
}

// Decision результат проверки
type Decision struct {
	Accepted bool
	Reason   Reason
	Message  string
	Capacity int
	Booked   int
}

// VenueRepository источник столов и мест площадки
type VenueRepository interface {
	GetTables(ctx context.Context, venueID int64) ([]domain.Table, error)
}

// ReservationRepository источник пересекающихся бронирований
type ReservationRepository interface {
	GetOverlapping(ctx context.Context, venueID int64, start, end time.Time, excludeID *int64) ([]*domain.Reservation, error)
}

// SeatBlockRepository источник пересекающихся блокировок
type SeatBlockRepository interface {
	GetOverlapping(ctx context.Context, venueID int64, start, end time.Time) ([]*domain.SeatBlock, error)
}

// Validator проверка конфликтов бронирования
type Validator struct {
	venues       VenueRepository
	reservations ReservationRepository
	blocks       SeatBlockRepository
}

// NewValidator создает валидатор
func NewValidator(venues VenueRepository, reservations ReservationRepository, blocks SeatBlockRepository) *Validator {
	return &Validator{
		venues:       venues,
		reservations: reservations,
		blocks:       blocks,
	}
}

// Check проверяет запрос
// Ошибка возвращается только для некорректного запроса (ErrInvalidInput) или сбоя чтения (ErrInternal),
// бизнес-отказы (вместимость, занятость) возвращаются в Decision
func (v *Validator) Check(ctx context.Context, req Request) (*Decision, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	tables, err := v.venues.GetTables(ctx, req.VenueID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get tables: %w", ErrInternal, err)
	}

	capacity := domain.Capacity(tables)
	if req.SeatCount > capacity {
		return reject(ReasonCapacityExceeded, capacity, 0), nil
	}

	// Разрешаем место/стол до чтения бронирований: неизвестный ресурс это ошибка запроса
	var (
		table *domain.Table
		seat  *domain.Seat
	)
	switch {
	case req.SeatID != nil:
		t, s, ok := domain.FindSeat(tables, *req.SeatID)
		if !ok || !s.IsActive || !t.IsActive {
			return nil, fmt.Errorf("%w: seat %d is not an active seat of venue %d", ErrInvalidInput, *req.SeatID, req.VenueID)
		}
		if req.SeatCount > 1 {
			return reject(ReasonCapacityExceeded, capacity, 0), nil
		}
		table, seat = t, s
	case req.TableID != nil:
		t, ok := domain.FindTable(tables, *req.TableID)
		if !ok || !t.IsActive {
			return nil, fmt.Errorf("%w: table %d is not an active table of venue %d", ErrInvalidInput, *req.TableID, req.VenueID)
		}
		if req.SeatCount > t.Capacity() {
			return reject(ReasonCapacityExceeded, t.Capacity(), 0), nil
		}
		table = t
	}

	reservations, err := v.reservations.GetOverlapping(ctx, req.VenueID, req.StartAt, req.EndAt, req.ExcludeReservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
	}
	reservations = activeOverlapping(reservations, req)

	blocks, err := v.blocks.GetOverlapping(ctx, req.VenueID, req.StartAt, req.EndAt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get seat blocks: %w", ErrInternal, err)
	}
	blocks = overlappingBlocks(blocks, req)

	switch {
	case seat != nil:
		if seatTaken(seat.ID, table.ID, reservations, blocks) {
			return reject(ReasonSeatsUnavailable, capacity, 0), nil
		}
	case table != nil:
		if tableTaken(table, reservations, blocks) {
			return reject(ReasonSeatsUnavailable, capacity, 0), nil
		}
	default:
		if hasVenueWideBlock(blocks) {
			return reject(ReasonSeatsUnavailable, capacity, 0), nil
		}
		booked := 0
		for _, r := range reservations {
			booked += r.SeatCount
		}
		available := capacity - blockedSeatCount(tables, blocks)
		if booked+req.SeatCount > available {
			return reject(ReasonSeatsUnavailable, capacity, booked), nil
		}
		return &Decision{Accepted: true, Capacity: capacity, Booked: booked}, nil
	}

	return &Decision{Accepted: true, Capacity: capacity}, nil
}

func validateRequest(req Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}
	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}
	if req.SeatCount < domain.MinSeatCount {
		return fmt.Errorf("%w: seatCount must be at least %d", ErrInvalidInput, domain.MinSeatCount)
	}
	if req.SeatID != nil && req.TableID != nil {
		return fmt.Errorf("%w: seatId and tableId are mutually exclusive", ErrInvalidInput)
	}
	return nil
}

func reject(reason Reason, capacity, booked int) *Decision {
	msg := MsgSeatsUnavailable
	if reason == ReasonCapacityExceeded {
		msg = MsgCapacityExceeded
	}
	return &Decision{Reason: reason, Message: msg, Capacity: capacity, Booked: booked}
}

// activeOverlapping повторно применяет правило полуинтервалов к данным хранилища
func activeOverlapping(reservations []*domain.Reservation, req Request) []*domain.Reservation {
	out := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r == nil || !r.IsActive() || !r.Overlaps(req.StartAt, req.EndAt) {
			continue
		}
		if req.ExcludeReservationID != nil && r.ID == *req.ExcludeReservationID {
			continue
		}
		out = append(out, r)
	}
	return out
}

func overlappingBlocks(blocks []*domain.SeatBlock, req Request) []*domain.SeatBlock {
	out := make([]*domain.SeatBlock, 0, len(blocks))
	for _, b := range blocks {
		if b == nil || !b.Overlaps(req.StartAt, req.EndAt) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// seatTaken место занято своим бронированием, групповой бронью стола или блокировкой
func seatTaken(seatID, tableID int64, reservations []*domain.Reservation, blocks []*domain.SeatBlock) bool {
	for _, r := range reservations {
		if r.SeatID != nil && *r.SeatID == seatID {
			return true
		}
		if r.IsGroup() && *r.TableID == tableID {
			return true
		}
	}
	for _, b := range blocks {
		if b.IsVenueWide() || *b.SeatID == seatID {
			return true
		}
	}
	return false
}

// tableTaken стол занят групповой бронью, бронью любого своего места или блокировкой
func tableTaken(table *domain.Table, reservations []*domain.Reservation, blocks []*domain.SeatBlock) bool {
	seats := make(map[int64]struct{}, len(table.Seats))
	for _, id := range table.SeatIDs() {
		seats[id] = struct{}{}
	}

	for _, r := range reservations {
		if r.IsGroup() && *r.TableID == table.ID {
			return true
		}
		if r.SeatID != nil {
			if _, ok := seats[*r.SeatID]; ok {
				return true
			}
		}
	}
	for _, b := range blocks {
		if b.IsVenueWide() {
			return true
		}
		if _, ok := seats[*b.SeatID]; ok {
			return true
		}
	}
	return false
}

func hasVenueWideBlock(blocks []*domain.SeatBlock) bool {
	for _, b := range blocks {
		if b.IsVenueWide() {
			return true
		}
	}
	return false
}

// blockedSeatCount число различных активных мест, попавших под блокировки
func blockedSeatCount(tables []domain.Table, blocks []*domain.SeatBlock) int {
	blocked := make(map[int64]struct{}, len(blocks))
	for _, b := range blocks {
		if b.IsVenueWide() {
			continue
		}
		t, s, ok := domain.FindSeat(tables, *b.SeatID)
		if !ok || !s.IsActive || !t.IsActive {
			continue
		}
		blocked[s.ID] = struct{}{}
	}
	return len(blocked)
}
