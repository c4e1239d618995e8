package get_venue_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/availability"
	getVenueStatus "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_venue_status"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
)

type fakeUseCase struct {
	got  *getVenueStatus.Request
	resp *getVenueStatus.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getVenueStatus.Request) (*getVenueStatus.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/venues/{venueId}/status", NewHandler(uc, logger.NewNop()).Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_OK(t *testing.T) {
	at := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	next := at.Add(90 * time.Minute)
	uc := &fakeUseCase{resp: &getVenueStatus.Response{
		VenueID:         7,
		Timezone:        "UTC",
		Capacity:        2,
		OpenStatus:      domain.OpenStatus{IsOpen: true, Status: domain.OpenNow},
		Availability:    "Next availability @ 11:30 AM",
		State:           availability.StateNextAvailable,
		NextAvailableAt: &next,
		CalculatedAt:    at,
	}}

	w := serve(uc, "/api/v1/venues/7/status?at=2025-06-02T10:00:00Z")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got.At)
	assert.True(t, uc.got.At.Equal(at))

	var body VenueStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NEXT_AVAILABLE", body.State)
	assert.Equal(t, "2025-06-02T11:30:00Z", *body.NextAvailableAt)
	assert.NotNil(t, body.WeeklyHours)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "/api/v1/venues/abc/status").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "/api/v1/venues/7/status?at=tomorrow").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeUseCase{err: getVenueStatus.ErrVenueNotFound}, "/api/v1/venues/7/status").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeUseCase{err: getVenueStatus.ErrInternal}, "/api/v1/venues/7/status").Code)
}
