package seat_blocks

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/seatblocks"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidBlockID     = "некорректный ID блокировки"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidBlock       = "некорректные параметры блокировки"
	msgVenueNotFound      = "площадка не найдена"
	msgBlockNotFound      = "блокировка не найдена"
	msgForbidden          = "доступ запрещен"
)

// Handler обслуживает управление блокировками мест
type Handler struct {
	service SeatBlockService
	logger  Logger
}

func NewHandler(service SeatBlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/venues/{venueId}/seat-blocks
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	venueID, userID, ok := h.identify(w, r, "POST /venues/{id}/seat-blocks")
	if !ok {
		return
	}

	var req CreateSeatBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{id}/seat-blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(venueID, userID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	block, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		h.respondServiceError(w, "POST /venues/{id}/seat-blocks", venueID, err)
		return
	}

	h.logger.Info("POST /venues/{id}/seat-blocks - Seat block created: block_id=%d, venue_id=%d", block.ID, venueID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(block))
}

// List GET /api/v1/venues/{venueId}/seat-blocks
// Query params: from, to (опционально, RFC 3339)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	venueID, userID, ok := h.identify(w, r, "GET /venues/{id}/seat-blocks")
	if !ok {
		return
	}

	req := &seatblocks.ListRequest{VenueID: venueID, UserID: userID}
	q := r.URL.Query()
	if s := q.Get("from"); s != "" {
		from, err := time.Parse(time.RFC3339, s)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
		req.From = &from
	}
	if s := q.Get("to"); s != "" {
		to, err := time.Parse(time.RFC3339, s)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
		req.To = &to
	}

	blocks, err := h.service.ListForVenue(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, "GET /venues/{id}/seat-blocks", venueID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(blocks))
}

// Delete DELETE /api/v1/venues/{venueId}/seat-blocks/{blockId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	venueID, userID, ok := h.identify(w, r, "DELETE /venues/{id}/seat-blocks/{blockId}")
	if !ok {
		return
	}

	blockID, err := strconv.ParseInt(mux.Vars(r)["blockId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.Delete(r.Context(), venueID, blockID, userID); err != nil {
		h.respondServiceError(w, "DELETE /venues/{id}/seat-blocks/{blockId}", venueID, err)
		return
	}

	h.logger.Info("DELETE /venues/{id}/seat-blocks/{blockId} - Seat block removed: block_id=%d, venue_id=%d", blockID, venueID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) identify(w http.ResponseWriter, r *http.Request, route string) (venueID, userID int64, ok bool) {
	venueID, err := strconv.ParseInt(mux.Vars(r)["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid venue ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return 0, 0, false
	}

	userID, ok = middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, 0, false
	}

	return venueID, userID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, venueID int64, err error) {
	switch {
	case errors.Is(err, seatblocks.ErrVenueNotFound):
		handlers.RespondNotFound(w, msgVenueNotFound)

	case errors.Is(err, seatblocks.ErrSeatBlockNotFound):
		handlers.RespondNotFound(w, msgBlockNotFound)

	case errors.Is(err, seatblocks.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: venue_id=%d", route, venueID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, seatblocks.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBlock)

	default:
		h.logger.Error("%s - Failed: venue_id=%d, error=%v", route, venueID, err)
		handlers.RespondInternalError(w)
	}
}
