package sync_venue_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/hours"
)

const (
	msgInvalidVenueID    = "некорректный ID площадки"
	msgVenueNotFound     = "площадка не найдена"
	msgNoGooglePlace     = "площадка не привязана к Google Places"
	msgGoogleUnavailable = "сервис Google Places недоступен"
)

type Handler struct {
	service HoursService
	logger  Logger
}

func NewHandler(service HoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/hours/sync
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(mux.Vars(r)["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/hours/sync - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	result, err := h.service.SyncVenueHoursFromGoogle(r.Context(), venueID)
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, hours.ErrNoGooglePlace):
			handlers.RespondUnprocessable(w, msgNoGooglePlace)

		case errors.Is(err, hours.ErrGoogleUnavailable):
			h.logger.Warn("POST /venues/{id}/hours/sync - Google unavailable: venue_id=%d, error=%v", venueID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGoogleUnavailable)

		default:
			h.logger.Error("POST /venues/{id}/hours/sync - Failed to sync hours: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{id}/hours/sync - Hours synced: venue_id=%d, updated=%v, skipped=%v",
		venueID, result.UpdatedDays, result.SkippedDays)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
