package find_tables

import (
	"errors"
	"net/http"

	"github.com/castlepub/reservation-system-sub000/internal/api/handlers"
	allocateTables "github.com/castlepub/reservation-system-sub000/internal/usecase/allocate_tables"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid booking date, expected YYYY-MM-DD"
	msgInvalidInput       = "invalid search parameters"
	msgRoomNotFound       = "room not found"
	msgRoomClosed         = "room is closed at the requested time"
	msgTimeBlocked        = "the requested time is not open for booking"
)

type Handler struct {
	useCase AllocateTablesUseCase
	logger  Logger
}

func NewHandler(useCase AllocateTablesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tables/find
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req FindTablesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tables/find - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /tables/find - failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, allocateTables.ErrRoomNotFound):
			h.logger.Warn("POST /tables/find - room not found")
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, allocateTables.ErrRoomClosed):
			h.logger.Warn("POST /tables/find - room closed: date=%s, time=%s", req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgRoomClosed)

		case errors.Is(err, allocateTables.ErrTimeBlocked):
			h.logger.Warn("POST /tables/find - time blocked: date=%s, time=%s", req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgTimeBlocked)

		case errors.Is(err, allocateTables.ErrInvalidInput):
			h.logger.Warn("POST /tables/find - invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tables/find - search failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tables/find - available=%t, tables=%d", result.Available, len(result.Tables))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
