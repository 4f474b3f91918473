package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/castlepub/reservation-system-sub000/internal/api/handlers"
	"github.com/castlepub/reservation-system-sub000/internal/domain"
	getAvailableSlots "github.com/castlepub/reservation-system-sub000/internal/usecase/get_available_slots"
)

const (
	msgInvalidRoomID    = "invalid room id"
	msgInvalidDate      = "invalid date, expected YYYY-MM-DD"
	msgInvalidPartySize = "invalid party size"
	msgInvalidDuration  = "invalid duration"
	msgInvalidStep      = "invalid step"
	msgInvalidInput     = "invalid search parameters"
	msgRoomNotFound     = "room not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/available-slots?date=YYYY-MM-DD&partySize=N[&duration=M][&step=K][&publicOnly=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{roomId}/available-slots - invalid room id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /rooms/%d/available-slots - invalid date: %v", roomID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	partySize, err := strconv.Atoi(query.Get("partySize"))
	if err != nil {
		h.logger.Warn("GET /rooms/%d/available-slots - invalid party size: %v", roomID, err)
		handlers.RespondBadRequest(w, msgInvalidPartySize)
		return
	}

	req := &getAvailableSlots.Request{
		RoomID:     roomID,
		Date:       date,
		PartySize:  partySize,
		PublicOnly: query.Get("publicOnly") == "true",
	}

	if raw := query.Get("duration"); raw != "" {
		if req.DurationMinutes, err = strconv.Atoi(raw); err != nil {
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}
	if raw := query.Get("step"); raw != "" {
		if req.StepMinutes, err = strconv.Atoi(raw); err != nil {
			handlers.RespondBadRequest(w, msgInvalidStep)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/%d/available-slots - room not found", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /rooms/%d/available-slots - invalid input: %v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /rooms/%d/available-slots - failed: %v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/%d/available-slots - %d slots", roomID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
