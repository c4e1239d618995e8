package create_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgVenueNotFound      = "площадка не найдена"
	msgSeatsNotAvailable  = "выбранные места заняты на это время"
	msgCapacityExceeded   = "запрошено больше мест, чем доступно"
	msgStartInPast        = "нельзя забронировать прошедшее время"
	msgTooLong            = "бронирование слишком длинное"
	msgInvalidReservation = "некорректные параметры бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := strconv.ParseInt(mux.Vars(r)["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/reservations - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /venues/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(venueID, userID)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/reservations - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSeatsNotAvailable):
			h.logger.Warn("POST /venues/{id}/reservations - Seats not available: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondConflict(w, msgSeatsNotAvailable)

		case errors.Is(err, createReservation.ErrCapacityExceeded):
			h.logger.Warn("POST /venues/{id}/reservations - Capacity exceeded: venue_id=%d, seats=%d", venueID, useCaseReq.SeatCount)
			handlers.RespondUnprocessable(w, msgCapacityExceeded)

		case errors.Is(err, createReservation.ErrVenueNotFound):
			h.logger.Warn("POST /venues/{id}/reservations - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createReservation.ErrStartInPast):
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createReservation.ErrTooLong):
			handlers.RespondBadRequest(w, msgTooLong)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /venues/{id}/reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReservation)

		default:
			h.logger.Error("POST /venues/{id}/reservations - Failed to create reservation: venue_id=%d, user_id=%d, error=%v",
				venueID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{id}/reservations - Reservation created successfully: reservation_id=%d, venue_id=%d, user_id=%d",
		result.ID, venueID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
