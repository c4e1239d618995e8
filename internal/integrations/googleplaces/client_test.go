package googleplaces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
)

func newServer(t *testing.T, status int, body string) (*Client, *http.Request) {
	t.Helper()
	var captured http.Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL+"/", "secret-key", time.Second, logger.NewNop()), &captured
}

func hoursByDay(rows []domain.WeeklyHoursRow) map[int]string {
	out := make(map[int]string, len(rows))
	for _, r := range rows {
		if r.IsClosed {
			out[r.DayOfWeek] = "closed"
			continue
		}
		out[r.DayOfWeek] = r.OpenTime.String() + "-" + r.CloseTime.String()
	}
	return out
}

func TestGetWeeklyHours(t *testing.T) {
	body := `{"regularOpeningHours": {"openNow": true, "periods": [
		{"open": {"day": 1, "hour": 9, "minute": 0}, "close": {"day": 1, "hour": 12, "minute": 0}},
		{"open": {"day": 1, "hour": 13, "minute": 30}, "close": {"day": 1, "hour": 18, "minute": 0}},
		{"open": {"day": 2, "hour": 9, "minute": 0}, "close": {"day": 2, "hour": 17, "minute": 0}},
		{"open": {"day": 5, "hour": 18, "minute": 0}, "close": {"day": 6, "hour": 2, "minute": 0}}
	]}}`
	c, req := newServer(t, http.StatusOK, body)

	rows, err := c.GetWeeklyHours(context.Background(), "ChIJ abc")
	require.NoError(t, err)

	assert.Equal(t, "/v1/places/ChIJ%20abc", req.URL.EscapedPath())
	assert.Equal(t, "secret-key", req.Header.Get("X-Goog-Api-Key"))
	assert.Equal(t, "regularOpeningHours", req.Header.Get("X-Goog-FieldMask"))

	require.Len(t, rows, 7)
	for i, r := range rows {
		assert.Equal(t, i, r.DayOfWeek)
		assert.Equal(t, domain.HoursRowGoogle, r.Source)
	}
	assert.Equal(t, map[int]string{
		0: "closed",
		1: "09:00-18:00",
		2: "09:00-17:00",
		3: "closed",
		4: "closed",
		5: "18:00-23:59",
		6: "closed",
	}, hoursByDay(rows))
}

func TestGetWeeklyHours_AlwaysOpen(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{"regularOpeningHours": {"periods": [{"open": {"day": 0, "hour": 0, "minute": 0}}]}}`)

	rows, err := c.GetWeeklyHours(context.Background(), "p")
	require.NoError(t, err)
	for _, r := range rows {
		assert.False(t, r.IsClosed)
		assert.Equal(t, "00:00", r.OpenTime.String())
		assert.Equal(t, "23:59", r.CloseTime.String())
	}
}

func TestGetWeeklyHours_Errors(t *testing.T) {
	ctx := context.Background()

	c, _ := newServer(t, http.StatusNotFound, `{}`)
	_, err := c.GetWeeklyHours(ctx, "p")
	assert.ErrorIs(t, err, ErrPlaceNotFound)

	c, _ = newServer(t, http.StatusForbidden, `{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`)
	_, err = c.GetWeeklyHours(ctx, "p")
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "API key not valid")

	c, _ = newServer(t, http.StatusOK, `{}`)
	_, err = c.GetWeeklyHours(ctx, "p")
	assert.ErrorIs(t, err, ErrNoOpeningHours)

	c, _ = newServer(t, http.StatusOK, `{"regularOpeningHours": {"periods": [{"open": {"day": 9, "hour": 0, "minute": 0}}]}}`)
	_, err = c.GetWeeklyHours(ctx, "p")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	c, _ = newServer(t, http.StatusOK, `not json`)
	_, err = c.GetWeeklyHours(ctx, "p")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetWeeklyHours_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "k", 100*time.Millisecond, logger.NewNop())
	_, err := c.GetWeeklyHours(context.Background(), "p")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.GetWeeklyHours(context.Background(), "place")
	assert.ErrorIs(t, err, ErrDisabled)
}
