package set_hours_source

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/hours"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSource      = "некорректный источник расписания, ожидается manual, google или пустое значение"
	msgVenueNotFound      = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
)

// SetHoursSourceRequest HTTP request model
// Пустая строка сбрасывает режим
type SetHoursSourceRequest struct {
	HoursSource string `json:"hoursSource"`
}

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

// Handle PUT /api/v1/venues/{venueId}/hours/source
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(mux.Vars(r)["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /venues/{id}/hours/source - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetHoursSourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{id}/hours/source - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	source, err := domain.ParseHoursSource(req.HoursSource)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSource)
		return
	}

	result, err := h.service.SetHoursSource(r.Context(), venueID, userID, source)
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, hours.ErrAccessDenied):
			h.logger.Warn("PUT /venues/{id}/hours/source - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /venues/{id}/hours/source - Failed to set source: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /venues/{id}/hours/source - Hours source updated: venue_id=%d, source=%q", venueID, source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
