package hours

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
)

type mockVenueRepo struct{ mock.Mock }

func (m *mockVenueRepo) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*domain.Venue)
	return v, args.Error(1)
}

func (m *mockVenueRepo) UpdateHoursSource(ctx context.Context, id int64, source domain.HoursSource) error {
	return m.Called(ctx, id, source).Error(0)
}

type mockHoursRepo struct{ mock.Mock }

func (m *mockHoursRepo) GetByVenue(ctx context.Context, venueID int64) ([]domain.WeeklyHoursRow, error) {
	args := m.Called(ctx, venueID)
	rows, _ := args.Get(0).([]domain.WeeklyHoursRow)
	return rows, args.Error(1)
}

func (m *mockHoursRepo) Upsert(ctx context.Context, venueID int64, rows []domain.WeeklyHoursRow) error {
	return m.Called(ctx, venueID, rows).Error(0)
}

func (m *mockHoursRepo) DeleteLegacyDays(ctx context.Context, venueID int64, days []int) error {
	return m.Called(ctx, venueID, days).Error(0)
}

func (m *mockHoursRepo) DeleteManualExcept(ctx context.Context, venueID int64, keepDays []int) error {
	return m.Called(ctx, venueID, keepDays).Error(0)
}

type mockGoogle struct{ mock.Mock }

func (m *mockGoogle) GetWeeklyHours(ctx context.Context, placeID string) ([]domain.WeeklyHoursRow, error) {
	args := m.Called(ctx, placeID)
	rows, _ := args.Get(0).([]domain.WeeklyHoursRow)
	return rows, args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) GetCanonicalHours(ctx context.Context, venueID int64) (*domain.CanonicalVenueHours, bool, error) {
	args := m.Called(ctx, venueID)
	h, _ := args.Get(0).(*domain.CanonicalVenueHours)
	return h, args.Bool(1), args.Error(2)
}

func (m *mockCache) SetCanonicalHours(ctx context.Context, venueID int64, hours domain.CanonicalVenueHours) error {
	return m.Called(ctx, venueID, hours).Error(0)
}

func (m *mockCache) InvalidateVenue(ctx context.Context, venueID int64) error {
	return m.Called(ctx, venueID).Error(0)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	venues *mockVenueRepo
	hours  *mockHoursRepo
	google *mockGoogle
	cache  *mockCache
	svc    *Service
}

func newFixture() *fixture {
	f := &fixture{
		venues: &mockVenueRepo{},
		hours:  &mockHoursRepo{},
		google: &mockGoogle{},
		cache:  &mockCache{},
	}
	f.svc = NewService(f.venues, f.hours, f.google, f.cache, inlineTx{}, logger.NewNop())
	return f
}

func manualVenue() *domain.Venue {
	return &domain.Venue{
		ID:            7,
		Timezone:      "Europe/Berlin",
		HoursSource:   domain.HoursSourceManual,
		GooglePlaceID: ptr.Ptr("place-7"),
		ManagerIDs:    []int64{100},
	}
}

func TestSyncVenueHoursFromGoogle_KeepsManualDays(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	existing := []domain.WeeklyHoursRow{row(1, "08:00", "12:00", domain.HoursRowManual)}
	fresh := []domain.WeeklyHoursRow{
		row(1, "09:00", "17:00", domain.HoursRowGoogle),
		row(2, "09:00", "17:00", domain.HoursRowGoogle),
	}

	f.venues.On("GetByID", ctx, int64(7)).Return(manualVenue(), nil)
	f.google.On("GetWeeklyHours", ctx, "place-7").Return(fresh, nil)
	f.hours.On("GetByVenue", ctx, int64(7)).Return(existing, nil)
	f.hours.On("DeleteLegacyDays", ctx, int64(7), []int{2}).Return(nil)
	f.hours.On("Upsert", ctx, int64(7), mock.MatchedBy(func(rows []domain.WeeklyHoursRow) bool {
		return len(rows) == 1 && rows[0].DayOfWeek == 2 && rows[0].Source == domain.HoursRowGoogle
	})).Return(nil)
	f.cache.On("InvalidateVenue", ctx, int64(7)).Return(nil)

	res, err := f.svc.SyncVenueHoursFromGoogle(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, []int{2}, res.UpdatedDays)
	assert.Equal(t, []int{1}, res.SkippedDays)
	f.hours.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestSyncVenueHoursFromGoogle_ReplacesLegacyRows(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	venue := manualVenue()
	venue.HoursSource = domain.HoursSourceUnset
	legacy := []domain.WeeklyHoursRow{row(1, "09:00", "17:00", domain.HoursRowLegacy)}
	fresh := []domain.WeeklyHoursRow{row(1, "10:00", "18:00", domain.HoursRowGoogle)}

	var calls []string
	f.venues.On("GetByID", ctx, int64(7)).Return(venue, nil)
	f.google.On("GetWeeklyHours", ctx, "place-7").Return(fresh, nil)
	f.hours.On("GetByVenue", ctx, int64(7)).Return(legacy, nil).Once()
	f.hours.On("DeleteLegacyDays", ctx, int64(7), []int{1}).
		Run(func(mock.Arguments) { calls = append(calls, "delete") }).Return(nil)
	f.hours.On("Upsert", ctx, int64(7), mock.Anything).
		Run(func(mock.Arguments) { calls = append(calls, "upsert") }).Return(nil)
	f.cache.On("InvalidateVenue", ctx, int64(7)).Return(nil)

	res, err := f.svc.SyncVenueHoursFromGoogle(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, res.UpdatedDays)
	assert.Equal(t, []string{"delete", "upsert"}, calls)

	f.hours.On("GetByVenue", ctx, int64(7)).Return([]domain.WeeklyHoursRow{
		row(1, "10:00", "18:00", domain.HoursRowGoogle),
	}, nil)
	f.cache.On("GetCanonicalHours", ctx, int64(7)).Return(nil, false, nil)
	f.cache.On("SetCanonicalHours", ctx, int64(7), mock.Anything).Return(nil)

	got, err := f.svc.GetCanonicalHours(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got.WeeklyHours, 1)
	assert.Equal(t, "10:00", got.WeeklyHours[0].OpenTime.String())
}

func TestSyncVenueHoursFromGoogle_NoPlaceID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	venue := manualVenue()
	venue.GooglePlaceID = nil
	f.venues.On("GetByID", ctx, int64(7)).Return(venue, nil)

	_, err := f.svc.SyncVenueHoursFromGoogle(ctx, 7)
	assert.ErrorIs(t, err, ErrNoGooglePlace)
	f.google.AssertNotCalled(t, "GetWeeklyHours", mock.Anything, mock.Anything)
}

func TestSyncVenueHoursFromGoogle_GoogleFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.venues.On("GetByID", ctx, int64(7)).Return(manualVenue(), nil)
	f.google.On("GetWeeklyHours", ctx, "place-7").Return(nil, errors.New("timeout"))

	_, err := f.svc.SyncVenueHoursFromGoogle(ctx, 7)
	assert.ErrorIs(t, err, ErrGoogleUnavailable)
	f.hours.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncVenueHoursFromGoogle_VenueNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.venues.On("GetByID", ctx, int64(7)).Return(nil, venueRepo.ErrVenueNotFound)

	_, err := f.svc.SyncVenueHoursFromGoogle(ctx, 7)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestGetCanonicalHours_CacheHit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cached := &domain.CanonicalVenueHours{Timezone: "Europe/Berlin"}
	f.cache.On("GetCanonicalHours", ctx, int64(7)).Return(cached, true, nil)

	got, err := f.svc.GetCanonicalHours(ctx, 7)

	require.NoError(t, err)
	assert.Same(t, cached, got)
	f.venues.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetCanonicalHours_CacheMissBuildsAndStores(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	rows := []domain.WeeklyHoursRow{
		row(1, "08:00", "12:00", domain.HoursRowManual),
		row(1, "09:00", "17:00", domain.HoursRowGoogle),
	}

	f.cache.On("GetCanonicalHours", ctx, int64(7)).Return(nil, false, nil)
	f.venues.On("GetByID", ctx, int64(7)).Return(manualVenue(), nil)
	f.hours.On("GetByVenue", ctx, int64(7)).Return(rows, nil)
	f.cache.On("SetCanonicalHours", ctx, int64(7), mock.Anything).Return(nil)

	got, err := f.svc.GetCanonicalHours(ctx, 7)

	require.NoError(t, err)
	require.Len(t, got.WeeklyHours, 1)
	assert.Equal(t, domain.HoursRowManual, got.WeeklyHours[0].Source)
	f.cache.AssertExpectations(t)
}

func TestGetCanonicalHours_CacheErrorFallsThrough(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.cache.On("GetCanonicalHours", ctx, int64(7)).Return(nil, false, errors.New("redis down"))
	f.venues.On("GetByID", ctx, int64(7)).Return(manualVenue(), nil)
	f.hours.On("GetByVenue", ctx, int64(7)).Return([]domain.WeeklyHoursRow{}, nil)
	f.cache.On("SetCanonicalHours", ctx, int64(7), mock.Anything).Return(errors.New("redis down"))

	got, err := f.svc.GetCanonicalHours(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, got.WeeklyHours)
}

func TestSetManualHours(t *testing.T) {
	ctx := context.Background()

	t.Run("not a manager", func(t *testing.T) {
		f := newFixture()
		f.venues.On("GetByID", ctx, int64(7)).Return(manualVenue(), nil)

		_, err := f.svc.SetManualHours(ctx, 7, 555, []domain.WeeklyHoursRow{row(1, "09:00", "17:00", "")})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid rows", func(t *testing.T) {
		f := newFixture()
		f.venues.On("GetByID", ctx, int64(7)).Return(manualVenue(), nil)

		_, err := f.svc.SetManualHours(ctx, 7, 100, []domain.WeeklyHoursRow{row(1, "17:00", "09:00", "")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("stores manual rows and switches source", func(t *testing.T) {
		f := newFixture()
		venue := manualVenue()
		venue.HoursSource = domain.HoursSourceGoogle
		f.venues.On("GetByID", ctx, int64(7)).Return(venue, nil)
		f.hours.On("DeleteManualExcept", ctx, int64(7), []int{1, 2}).Return(nil)
		f.hours.On("Upsert", ctx, int64(7), mock.MatchedBy(func(rows []domain.WeeklyHoursRow) bool {
			return len(rows) == 2 && rows[0].Source == domain.HoursRowManual && rows[1].OpenTime == nil
		})).Return(nil)
		f.venues.On("UpdateHoursSource", ctx, int64(7), domain.HoursSourceManual).Return(nil)
		f.cache.On("InvalidateVenue", ctx, int64(7)).Return(nil)
		f.hours.On("GetByVenue", ctx, int64(7)).Return([]domain.WeeklyHoursRow{
			row(1, "10:00", "14:00", domain.HoursRowManual),
			row(1, "09:00", "17:00", domain.HoursRowGoogle),
		}, nil)
		f.cache.On("SetCanonicalHours", ctx, int64(7), mock.Anything).Return(nil)

		closed := row(2, "09:00", "17:00", "")
		closed.IsClosed = true
		got, err := f.svc.SetManualHours(ctx, 7, 100, []domain.WeeklyHoursRow{row(1, "10:00", "14:00", ""), closed})

		require.NoError(t, err)
		require.Len(t, got.WeeklyHours, 1)
		assert.Equal(t, "10:00", got.WeeklyHours[0].OpenTime.String())
		f.venues.AssertExpectations(t)
		f.hours.AssertExpectations(t)
	})

	t.Run("omitted days lose their manual rows", func(t *testing.T) {
		f := newFixture()
		f.venues.On("GetByID", ctx, int64(7)).Return(manualVenue(), nil)
		f.hours.On("DeleteManualExcept", ctx, int64(7), []int{3}).Return(nil)
		f.hours.On("Upsert", ctx, int64(7), mock.Anything).Return(nil)
		f.venues.On("UpdateHoursSource", ctx, int64(7), domain.HoursSourceManual).Return(nil)
		f.cache.On("InvalidateVenue", ctx, int64(7)).Return(nil)
		f.hours.On("GetByVenue", ctx, int64(7)).Return([]domain.WeeklyHoursRow{
			row(3, "12:00", "20:00", domain.HoursRowManual),
		}, nil)
		f.cache.On("SetCanonicalHours", ctx, int64(7), mock.Anything).Return(nil)

		got, err := f.svc.SetManualHours(ctx, 7, 100, []domain.WeeklyHoursRow{row(3, "12:00", "20:00", "")})

		require.NoError(t, err)
		assert.Equal(t, []int{3}, days(got.WeeklyHours))
		f.hours.AssertExpectations(t)
	})

	t.Run("delete failure aborts before upsert", func(t *testing.T) {
		f := newFixture()
		f.venues.On("GetByID", ctx, int64(7)).Return(manualVenue(), nil)
		f.hours.On("DeleteManualExcept", ctx, int64(7), []int{3}).Return(errors.New("db down"))

		_, err := f.svc.SetManualHours(ctx, 7, 100, []domain.WeeklyHoursRow{row(3, "12:00", "20:00", "")})

		assert.ErrorIs(t, err, ErrInternal)
		f.hours.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestValidateManualRows(t *testing.T) {
	closed := domain.WeeklyHoursRow{DayOfWeek: 0, IsClosed: true}

	assert.NoError(t, validateManualRows([]domain.WeeklyHoursRow{closed, row(1, "09:00", "23:59", "")}))
	assert.ErrorIs(t, validateManualRows(nil), ErrInvalidInput)
	assert.ErrorIs(t, validateManualRows([]domain.WeeklyHoursRow{row(7, "09:00", "17:00", "")}), ErrInvalidInput)
	assert.ErrorIs(t, validateManualRows([]domain.WeeklyHoursRow{row(1, "09:00", "17:00", ""), row(1, "10:00", "11:00", "")}), ErrInvalidInput)
	assert.ErrorIs(t, validateManualRows([]domain.WeeklyHoursRow{row(1, "9:00", "17:00", "")}), ErrInvalidInput)
	assert.ErrorIs(t, validateManualRows([]domain.WeeklyHoursRow{{DayOfWeek: 3}}), ErrInvalidInput)
}
