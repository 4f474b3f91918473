package cancel_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/castlepub/reservation-system-sub000/internal/api/handlers"
	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/internal/service/bookings"
	"github.com/castlepub/reservation-system-sub000/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgReasonTooLong      = "cancellation reason is too long"
	msgBookingNotFound    = "booking not found"
	msgCannotCancel       = "booking cannot be cancelled"
	msgCancelled          = "booking cancelled"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{bookingId}/cancel - invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// The reason is optional; an absent body cancels without one.
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil &&
		!errors.Is(err, handlers.ErrEmptyBody) && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/%d/cancel - invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(req.CancellationReason) > domain.MaxCancelReasonLength {
		handlers.RespondBadRequest(w, msgReasonTooLong)
		return
	}

	err = h.service.Cancel(r.Context(), bookingID, &models.CancelBookingRequest{
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%d/cancel - not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/%d/cancel - cannot cancel", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /bookings/%d/cancel - failed: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/cancel - cancelled", bookingID)
	handlers.RespondJSON(w, http.StatusOK, CancelBookingResponse{Message: msgCancelled})
}
