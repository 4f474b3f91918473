package get_room_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/castlepub/reservation-system-sub000/internal/api/handlers"
	"github.com/castlepub/reservation-system-sub000/internal/domain"
	"github.com/castlepub/reservation-system-sub000/internal/service/bookings"
	"github.com/castlepub/reservation-system-sub000/internal/service/bookings/models"
)

const (
	msgInvalidRoomID = "invalid room id"
	msgInvalidDate   = "invalid date, expected YYYY-MM-DD"
	msgInvalidInput  = "invalid filter parameters"
	msgRoomNotFound  = "room not found"
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

// Handle GET /api/v1/rooms/{roomId}/bookings[?date=YYYY-MM-DD][&status=confirmed][&includeCancelled=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{roomId}/bookings - invalid room id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()
	req := &models.GetRoomBookingsRequest{
		RoomID:           roomID,
		IncludeCancelled: query.Get("includeCancelled") == "true",
	}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /rooms/%d/bookings - invalid date: %v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.GetRoomBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/%d/bookings - room not found", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /rooms/%d/bookings - invalid filter: %v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /rooms/%d/bookings - failed: %v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/%d/bookings - %d bookings", roomID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
