package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/queue"
	reservationRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/reservation"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/conflict"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
)

type mockVenues struct{ mock.Mock }

func (m *mockVenues) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*domain.Venue)
	return v, args.Error(1)
}

type mockReservations struct{ mock.Mock }

func (m *mockReservations) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, res)
	r, _ := args.Get(0).(*domain.Reservation)
	return r, args.Error(1)
}

type mockValidator struct{ mock.Mock }

func (m *mockValidator) Check(ctx context.Context, req conflict.Request) (*conflict.Decision, error) {
	args := m.Called(ctx, req)
	d, _ := args.Get(0).(*conflict.Decision)
	return d, args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishReservationEvent(ctx context.Context, event queue.ReservationEvent) error {
	return m.Called(ctx, event).Error(0)
}

type fakeMetrics struct {
	created  int
	rejected []string
	raceLost int
}

func (f *fakeMetrics) IncReservationCreated()               { f.created++ }
func (f *fakeMetrics) IncReservationRejected(reason string) { f.rejected = append(f.rejected, reason) }
func (f *fakeMetrics) IncOverlapRaceLost()                  { f.raceLost++ }

// inlineTx выполняет fn без транзакции; commitErr имитирует ошибку фиксации
type inlineTx struct{ commitErr error }

func (tx inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.commitErr
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

type fixture struct {
	venues       *mockVenues
	reservations *mockReservations
	validator    *mockValidator
	publisher    *mockPublisher
	metrics      *fakeMetrics
	uc           *UseCase
}

func newFixture(tx inlineTx) *fixture {
	f := &fixture{
		venues:       &mockVenues{},
		reservations: &mockReservations{},
		validator:    &mockValidator{},
		publisher:    &mockPublisher{},
		metrics:      &fakeMetrics{},
	}
	f.uc = NewUseCase(f.venues, f.reservations, f.validator, f.publisher, f.metrics, tx, 720, logger.NewNop()).
		WithTimeProvider(fixedTime{now})
	return f
}

func validRequest() *Request {
	return &Request{
		UserID:    100,
		VenueID:   7,
		SeatID:    ptr.Ptr(int64(11)),
		StartAt:   now.Add(2 * time.Hour),
		EndAt:     now.Add(3 * time.Hour),
		SeatCount: 1,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(inlineTx{})
	ctx := context.Background()
	req := validRequest()

	f.venues.On("GetByID", ctx, int64(7)).Return(&domain.Venue{ID: 7}, nil)
	f.validator.On("Check", ctx, mock.MatchedBy(func(r conflict.Request) bool {
		return r.VenueID == 7 && *r.SeatID == 11 && r.ExcludeReservationID == nil
	})).Return(&conflict.Decision{Accepted: true, Capacity: 10}, nil)
	f.reservations.On("Create", ctx, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.SeatID != nil && *r.SeatID == 11 && r.TableID == nil && r.Status == domain.ReservationActive
	})).Return(&domain.Reservation{
		ID: 42, VenueID: 7, UserID: 100, SeatID: req.SeatID, StartAt: req.StartAt, EndAt: req.EndAt,
		SeatCount: 1, Status: domain.ReservationActive,
	}, nil)
	f.publisher.On("PublishReservationEvent", ctx, mock.MatchedBy(func(e queue.ReservationEvent) bool {
		return e.Type == queue.EventReservationCreated && e.ReservationID == 42
	})).Return(nil)

	resp, err := f.uc.Execute(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, 1, f.metrics.created)
	f.publisher.AssertExpectations(t)
}

func TestExecute_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(inlineTx{})
	ctx := context.Background()

	f.venues.On("GetByID", ctx, int64(7)).Return(&domain.Venue{ID: 7}, nil)
	f.validator.On("Check", ctx, mock.Anything).Return(&conflict.Decision{Accepted: true}, nil)
	f.reservations.On("Create", ctx, mock.Anything).Return(&domain.Reservation{ID: 1, Status: domain.ReservationActive}, nil)
	f.publisher.On("PublishReservationEvent", ctx, mock.Anything).Return(errors.New("broker down"))

	_, err := f.uc.Execute(ctx, validRequest())
	assert.NoError(t, err)
}

func TestExecute_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *Request)
		err    error
	}{
		{"end before start", func(r *Request) { r.EndAt = r.StartAt.Add(-time.Minute) }, ErrInvalidInput},
		{"zero seats", func(r *Request) { r.SeatCount = 0 }, ErrInvalidInput},
		{"seat and table", func(r *Request) { r.TableID = ptr.Ptr(int64(1)) }, ErrInvalidInput},
		{"no user", func(r *Request) { r.UserID = 0 }, ErrInvalidInput},
		{"in the past", func(r *Request) { r.StartAt = now.Add(-time.Hour); r.EndAt = now.Add(time.Hour) }, ErrStartInPast},
		{"too long", func(r *Request) { r.EndAt = r.StartAt.Add(13 * time.Hour) }, ErrTooLong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(inlineTx{})
			req := validRequest()
			tc.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.err)
			f.venues.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_VenueNotFound(t *testing.T) {
	f := newFixture(inlineTx{})
	ctx := context.Background()
	f.venues.On("GetByID", ctx, int64(7)).Return(nil, venueRepo.ErrVenueNotFound)

	_, err := f.uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_Rejections(t *testing.T) {
	cases := []struct {
		reason conflict.Reason
		err    error
	}{
		{conflict.ReasonSeatsUnavailable, ErrSeatsNotAvailable},
		{conflict.ReasonCapacityExceeded, ErrCapacityExceeded},
	}

	for _, tc := range cases {
		t.Run(string(tc.reason), func(t *testing.T) {
			f := newFixture(inlineTx{})
			ctx := context.Background()
			f.venues.On("GetByID", ctx, int64(7)).Return(&domain.Venue{ID: 7}, nil)
			f.validator.On("Check", ctx, mock.Anything).Return(&conflict.Decision{Reason: tc.reason}, nil)

			_, err := f.uc.Execute(ctx, validRequest())

			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, []string{string(tc.reason)}, f.metrics.rejected)
			f.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_UnknownSeatIsInvalidInput(t *testing.T) {
	f := newFixture(inlineTx{})
	ctx := context.Background()
	f.venues.On("GetByID", ctx, int64(7)).Return(&domain.Venue{ID: 7}, nil)
	f.validator.On("Check", ctx, mock.Anything).Return(nil, fmt.Errorf("%w: seat 11 is not an active seat", conflict.ErrInvalidInput))

	_, err := f.uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_LostRaceIsOrdinaryConflict(t *testing.T) {
	t.Run("exclusion violation on insert", func(t *testing.T) {
		f := newFixture(inlineTx{})
		ctx := context.Background()
		f.venues.On("GetByID", ctx, int64(7)).Return(&domain.Venue{ID: 7}, nil)
		f.validator.On("Check", ctx, mock.Anything).Return(&conflict.Decision{Accepted: true}, nil)
		f.reservations.On("Create", ctx, mock.Anything).Return(nil, fmt.Errorf("%w: Create: exclusion", reservationRepo.ErrOverlap))

		_, err := f.uc.Execute(ctx, validRequest())

		assert.ErrorIs(t, err, ErrSeatsNotAvailable)
		assert.Equal(t, 1, f.metrics.raceLost)
		f.publisher.AssertNotCalled(t, "PublishReservationEvent", mock.Anything, mock.Anything)
	})

	t.Run("serialization failure on commit", func(t *testing.T) {
		f := newFixture(inlineTx{commitErr: &pq.Error{Code: "40001"}})
		ctx := context.Background()
		f.venues.On("GetByID", ctx, int64(7)).Return(&domain.Venue{ID: 7}, nil)
		f.validator.On("Check", ctx, mock.Anything).Return(&conflict.Decision{Accepted: true}, nil)
		f.reservations.On("Create", ctx, mock.Anything).Return(&domain.Reservation{ID: 1}, nil)

		_, err := f.uc.Execute(ctx, validRequest())

		assert.ErrorIs(t, err, ErrSeatsNotAvailable)
		assert.Zero(t, f.metrics.created)
	})

	t.Run("serialization failure while checking conflicts", func(t *testing.T) {
		f := newFixture(inlineTx{})
		ctx := context.Background()
		f.venues.On("GetByID", ctx, int64(7)).Return(&domain.Venue{ID: 7}, nil)
		f.validator.On("Check", ctx, mock.Anything).
			Return(nil, fmt.Errorf("%w: failed to get seat blocks: %w", conflict.ErrInternal, &pq.Error{Code: "40001"}))

		_, err := f.uc.Execute(ctx, validRequest())

		assert.ErrorIs(t, err, ErrSeatsNotAvailable)
		assert.NotErrorIs(t, err, ErrInternal)
		assert.Equal(t, 1, f.metrics.raceLost)
		f.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestExecute_InternalErrors(t *testing.T) {
	f := newFixture(inlineTx{})
	ctx := context.Background()
	f.venues.On("GetByID", ctx, int64(7)).Return(&domain.Venue{ID: 7}, nil)
	f.validator.On("Check", ctx, mock.Anything).Return(&conflict.Decision{Accepted: true}, nil)
	f.reservations.On("Create", ctx, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := f.uc.Execute(ctx, validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
