package create_booking

import (
	"errors"
	"net/http"

	"github.com/castlepub/reservation-system-sub000/internal/api/handlers"
	createBooking "github.com/castlepub/reservation-system-sub000/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid booking date, expected YYYY-MM-DD"
	msgInvalidInput       = "invalid booking parameters"
	msgRoomNotFound       = "room not found"
	msgRoomClosed         = "room is closed at the requested time"
	msgTimeBlocked        = "the requested time is not open for booking"
	msgNoCapacity         = "no tables available for this party size"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrNoCapacity):
			h.logger.Warn("POST /bookings - no capacity: party=%d", req.PartySize)
			handlers.RespondError(w, http.StatusConflict, msgNoCapacity)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - room not found")
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrRoomClosed):
			h.logger.Warn("POST /bookings - room closed: date=%s, time=%s", req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgRoomClosed)

		case errors.Is(err, createBooking.ErrTimeBlocked):
			h.logger.Warn("POST /bookings - time blocked: date=%s, time=%s", req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgTimeBlocked)

		case errors.Is(err, createBooking.ErrInvalidInput), errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - booking created: booking_id=%d, room_id=%d", result.ID, result.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
