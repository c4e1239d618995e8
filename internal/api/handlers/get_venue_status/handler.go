package get_venue_status

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	getVenueStatus "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_venue_status"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidAt      = "некорректный параметр at, ожидается RFC 3339"
	msgVenueNotFound  = "площадка не найдена"
)

type Handler struct {
	useCase GetVenueStatusUseCase
	logger  Logger
}

func NewHandler(useCase GetVenueStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/status
// Query params: at (опционально, RFC 3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(mux.Vars(r)["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/status - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	req := &getVenueStatus.Request{VenueID: venueID}
	if atStr := r.URL.Query().Get("at"); atStr != "" {
		at, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/status - Invalid at parameter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAt)
			return
		}
		req.At = &at
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getVenueStatus.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getVenueStatus.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidVenueID)

		default:
			h.logger.Error("GET /venues/{id}/status - Failed to calculate status: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
