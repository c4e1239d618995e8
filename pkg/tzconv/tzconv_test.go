package tzconv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	loc, err := Load("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	_, err = Load("")
	assert.ErrorIs(t, err, ErrUnknownTimezone)

	_, err = Load("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrUnknownTimezone)

	loc, err = LoadOrUTC("nope")
	assert.Error(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestToWallClock_UsesVenueZone(t *testing.T) {
	loc, err := Load("America/Los_Angeles")
	require.NoError(t, err)

	// 2024-03-11 03:00 UTC = 2024-03-10 20:00 PDT (воскресенье)
	at := time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC)
	wc := ToWallClock(at, loc)

	assert.Equal(t, time.Sunday, wc.Weekday)
	assert.Equal(t, 20*60, wc.Minutes)
	assert.Equal(t, 10, wc.Day)
}

func TestInstantAt_NextDayAcrossMonth(t *testing.T) {
	loc, err := Load("Europe/Berlin")
	require.NoError(t, err)

	at := time.Date(2024, 1, 31, 22, 0, 0, 0, loc)
	wc := ToWallClock(at, loc)

	got := InstantAt(wc, 1, 9*60, loc)
	assert.True(t, got.Equal(time.Date(2024, 2, 1, 9, 0, 0, 0, loc)))
	assert.True(t, got.Equal(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)))
}

func TestDayDiff(t *testing.T) {
	loc, err := Load("Asia/Tokyo")
	require.NoError(t, err)

	a := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC) // 23:00 в Токио
	b := time.Date(2024, 5, 1, 16, 0, 0, 0, time.UTC) // 01:00 следующего дня в Токио

	assert.Equal(t, 1, DayDiff(a, b, loc))
	assert.Equal(t, 0, DayDiff(a, b, time.UTC))
	assert.False(t, SameLocalDay(a, b, loc))
	assert.True(t, SameLocalDay(a, b, time.UTC))
}

func TestShortWeekday(t *testing.T) {
	assert.Equal(t, "Sun", ShortWeekday(time.Sunday))
	assert.Equal(t, "Wed", ShortWeekday(time.Wednesday))
}

func TestConvertHour(t *testing.T) {
	ny, err := Load("America/New_York")
	require.NoError(t, err)

	date := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 13, ConvertHour(date, 9, ny, time.UTC))
}
