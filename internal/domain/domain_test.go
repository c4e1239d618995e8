package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

func TestHoursRowSource_LegacyAtBoundary(t *testing.T) {
	var s HoursRowSource
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, HoursRowLegacy, s)
	assert.True(t, s.IsGoogle())
	assert.False(t, s.IsManual())

	require.NoError(t, s.Scan([]byte("manual")))
	assert.True(t, s.IsManual())

	assert.ErrorIs(t, s.Scan("yelp"), ErrInvalidHoursSource)

	v, err := HoursRowLegacy.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestWeeklyHoursRow_JSONWithoutSourceIsLegacy(t *testing.T) {
	var rows []WeeklyHoursRow
	data := `[{"dayOfWeek":1,"isClosed":false,"openTime":"09:00","closeTime":"17:00"},
		{"dayOfWeek":2,"isClosed":true,"source":null},
		{"dayOfWeek":3,"isClosed":true,"source":"google"}]`
	require.NoError(t, json.Unmarshal([]byte(data), &rows))

	require.Len(t, rows, 3)
	assert.Equal(t, HoursRowLegacy, rows[0].Source)
	assert.Equal(t, HoursRowLegacy, rows[1].Source)
	assert.Equal(t, HoursRowGoogle, rows[2].Source)
	for _, r := range rows {
		assert.True(t, r.Source.IsGoogle())
	}
}

func TestWeeklyHoursRow_OpenWindow(t *testing.T) {
	open := types.TimeString("09:00")
	closing := types.TimeString("17:00")

	o, c, ok := WeeklyHoursRow{OpenTime: &open, CloseTime: &closing}.OpenWindow()
	assert.True(t, ok)
	assert.Equal(t, 540, o)
	assert.Equal(t, 1020, c)

	_, _, ok = WeeklyHoursRow{IsClosed: true, OpenTime: &open, CloseTime: &closing}.OpenWindow()
	assert.False(t, ok)

	_, _, ok = WeeklyHoursRow{OpenTime: &closing, CloseTime: &open}.OpenWindow()
	assert.False(t, ok)

	_, _, ok = WeeklyHoursRow{OpenTime: &open}.OpenWindow()
	assert.False(t, ok)
}

func TestCapacity(t *testing.T) {
	tables := []Table{
		{ID: 1, IsActive: true, SeatCount: 10, Seats: []Seat{
			{ID: 11, IsActive: true}, {ID: 12, IsActive: true}, {ID: 13, IsActive: false},
		}},
		{ID: 2, IsActive: true, SeatCount: 6},
		{ID: 3, IsActive: false, SeatCount: 8},
	}

	assert.Equal(t, 8, Capacity(tables))
	assert.Equal(t, 0, Capacity(nil))
}

func TestFindSeatAndTable(t *testing.T) {
	tables := []Table{{ID: 1, Seats: []Seat{{ID: 11, TableID: 1}}}}

	table, seat, ok := FindSeat(tables, 11)
	require.True(t, ok)
	assert.Equal(t, int64(1), table.ID)
	assert.Equal(t, int64(11), seat.ID)

	_, _, ok = FindSeat(tables, 99)
	assert.False(t, ok)

	_, ok = FindTable(tables, 1)
	assert.True(t, ok)
}

func TestOverlaps_HalfOpen(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	r := Reservation{StartAt: base, EndAt: base.Add(time.Hour)}

	assert.True(t, r.Overlaps(base.Add(30*time.Minute), base.Add(90*time.Minute)))
	assert.False(t, r.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)), "touching end")
	assert.False(t, r.Overlaps(base.Add(-time.Hour), base), "touching start")
	assert.True(t, r.Overlaps(base.Add(-time.Hour), base.Add(2*time.Hour)), "containing")
}

func TestReservation_IsGroup(t *testing.T) {
	assert.True(t, (&Reservation{TableID: ptr.Ptr(int64(1))}).IsGroup())
	assert.False(t, (&Reservation{TableID: ptr.Ptr(int64(1)), SeatID: ptr.Ptr(int64(2))}).IsGroup())
	assert.False(t, (&Reservation{}).IsGroup())
}

func TestVenue_IsManager(t *testing.T) {
	v := Venue{ManagerIDs: []int64{5, 7}}
	assert.True(t, v.IsManager(7))
	assert.False(t, v.IsManager(8))
}
